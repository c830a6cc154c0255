package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahyusaputra/motorshop-backend/internal/middleware"
	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type UserHandler struct {
	svc     service.UserService
	reports service.ReportService
	uploads *UploadHandler
}

func NewUserHandler(svc service.UserService, reports service.ReportService, uploads *UploadHandler) *UserHandler {
	return &UserHandler{svc: svc, reports: reports, uploads: uploads}
}

func (h *UserHandler) ListCustomers(c echo.Context) error {
	customers, err := h.svc.ListCustomers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch customers"))
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *UserHandler) Profile(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	u, err := h.svc.Profile(c.Request().Context(), uid)
	if err != nil {
		if err == service.ErrNotFound {
			return serviceError(c, err, "user")
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	var body struct {
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		Address         string `json:"address"`
		Province        string `json:"province"`
		City            string `json:"city"`
		District        string `json:"district"`
		Village         string `json:"village"`
		PostalCode      string `json:"postalCode"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.UpdateProfile(c.Request().Context(), uid, service.UpdateProfileInput{
		Name:            body.Name,
		Phone:           body.Phone,
		Address:         body.Address,
		Province:        body.Province,
		City:            body.City,
		District:        body.District,
		Village:         body.Village,
		PostalCode:      body.PostalCode,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if err != nil {
		return serviceError(c, err, "user")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UploadProfileImage(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing image file"))
	}
	path, err := h.uploads.saveImage(file, "profiles")
	if err != nil {
		switch err {
		case errUploadTooLarge, errUploadBadType:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store image"))
		}
	}
	u, err := h.svc.SetProfileImage(c.Request().Context(), uid, path)
	if err != nil {
		if err == service.ErrNotFound {
			return serviceError(c, err, "user")
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update profile"))
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Dashboard(c echo.Context) error {
	stats, err := h.reports.Dashboard(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build dashboard"))
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Reports(c echo.Context) error {
	report, err := h.reports.Financial(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build report"))
	}
	return c.JSON(http.StatusOK, report)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type StaffHandler struct {
	svc service.StaffService
}

func NewStaffHandler(svc service.StaffService) *StaffHandler {
	return &StaffHandler{svc: svc}
}

func (h *StaffHandler) Register(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	u, err := h.svc.Register(c.Request().Context(), body.Email, body.Password, body.Name, body.Phone, model.Role(body.Role))
	if err != nil {
		return serviceError(c, err, "staff member")
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *StaffHandler) List(c echo.Context) error {
	var role *model.Role
	if raw := c.QueryParam("role"); raw != "" {
		r := model.Role(raw)
		if !r.IsStaff() {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid role"))
		}
		role = &r
	}
	staff, err := h.svc.List(c.Request().Context(), role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch staff"))
	}
	return c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err, "staff member")
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahyusaputra/motorshop-backend/internal/middleware"
	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type DeliveryHandler struct {
	svc service.DeliveryService
}

func NewDeliveryHandler(svc service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

func deliveryStatusFilter(c echo.Context) (*model.DeliveryStatus, bool) {
	raw := c.QueryParam("status")
	if raw == "" {
		return nil, true
	}
	s := model.DeliveryStatus(raw)
	if !s.Valid() {
		return nil, false
	}
	return &s, true
}

func (h *DeliveryHandler) ListMine(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	status, ok := deliveryStatusFilter(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid status"))
	}
	list, err := h.svc.ListMine(c.Request().Context(), uid, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch deliveries"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DeliveryHandler) List(c echo.Context) error {
	status, ok := deliveryStatusFilter(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid status"))
	}
	list, err := h.svc.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch deliveries"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DeliveryHandler) ListDrivers(c echo.Context) error {
	drivers, err := h.svc.ListDrivers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch drivers"))
	}
	return c.JSON(http.StatusOK, drivers)
}

func (h *DeliveryHandler) UpdateStatus(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	var body struct {
		Status string  `json:"status"`
		Notes  *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	d, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), uid, model.DeliveryStatus(body.Status), body.Notes)
	if err != nil {
		return serviceError(c, err, "delivery")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DeliveryHandler) Complete(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	if err := h.svc.Complete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return serviceError(c, err, "delivery")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "completed"})
}

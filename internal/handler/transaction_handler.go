package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahyusaputra/motorshop-backend/internal/middleware"
	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/pricing"
	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type TransactionHandler struct {
	svc service.TransactionService
}

func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type CreateOrderResponse struct {
	Transaction    *model.Transaction      `json:"transaction"`
	VirtualAccount *pricing.VirtualAccount `json:"virtualAccount,omitempty"`
}

func (h *TransactionHandler) Create(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	var body struct {
		MotorID        string   `json:"motorId"`
		Quantity       int      `json:"quantity"`
		PaymentMethod  string   `json:"paymentMethod"`
		ShippingAddr   string   `json:"shippingAddress"`
		ShippingProv   string   `json:"shippingProvince"`
		ShippingCity   string   `json:"shippingCity"`
		ShippingDist   string   `json:"shippingDistrict"`
		ShippingVill   string   `json:"shippingVillage"`
		ShippingPostal string   `json:"shippingPostalCode"`
		ShippingPhone  string   `json:"shippingPhone"`
		Latitude       *float64 `json:"latitude"`
		Longitude      *float64 `json:"longitude"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	res, err := h.svc.Create(c.Request().Context(), uid, service.CreateOrderInput{
		MotorID:        body.MotorID,
		Quantity:       body.Quantity,
		PaymentMethod:  body.PaymentMethod,
		ShippingAddr:   body.ShippingAddr,
		ShippingProv:   body.ShippingProv,
		ShippingCity:   body.ShippingCity,
		ShippingDist:   body.ShippingDist,
		ShippingVill:   body.ShippingVill,
		ShippingPostal: body.ShippingPostal,
		ShippingPhone:  body.ShippingPhone,
		Latitude:       body.Latitude,
		Longitude:      body.Longitude,
	})
	if err != nil {
		return serviceError(c, err, "motor")
	}
	return c.JSON(http.StatusCreated, CreateOrderResponse{
		Transaction:    res.Transaction,
		VirtualAccount: res.VirtualAccount,
	})
}

func (h *TransactionHandler) ListMine(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	list, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) List(c echo.Context) error {
	var status *model.OrderStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := model.OrderStatus(raw)
		if !s.Valid() {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid status"))
		}
		status = &s
	}
	list, err := h.svc.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) ListPending(c echo.Context) error {
	list, err := h.svc.ListPending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) Process(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	tx, err := h.svc.Process(c.Request().Context(), c.Param("id"), model.OrderStatus(body.Status), uid)
	if err != nil {
		return serviceError(c, err, "transaction")
	}
	return c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) AssignDelivery(c echo.Context) error {
	var body struct {
		TransactionID string `json:"transactionId"`
		DriverID      string `json:"driverId"`
		Address       string `json:"address"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	d, err := h.svc.AssignDelivery(c.Request().Context(), body.TransactionID, body.DriverID, body.Address)
	if err != nil {
		return serviceError(c, err, "transaction")
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *TransactionHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch stats"))
	}
	return c.JSON(http.StatusOK, stats)
}

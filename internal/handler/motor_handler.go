package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wahyusaputra/motorshop-backend/internal/repository"
	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type MotorHandler struct {
	svc service.MotorService
}

func NewMotorHandler(svc service.MotorService) *MotorHandler {
	return &MotorHandler{svc: svc}
}

type motorBody struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Price       int64   `json:"price"`
	Stock       int     `json:"stock"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
}

func (b motorBody) input() service.MotorInput {
	return service.MotorInput{
		Name:        b.Name,
		Brand:       b.Brand,
		Model:       b.Model,
		Year:        b.Year,
		Price:       b.Price,
		Stock:       b.Stock,
		Image:       b.Image,
		Description: b.Description,
	}
}

func (h *MotorHandler) List(c echo.Context) error {
	filter := repository.MotorFilter{
		Brand:  c.QueryParam("brand"),
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid minPrice"))
		}
		filter.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid maxPrice"))
		}
		filter.MaxPrice = &v
	}
	motors, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch motors"))
	}
	return c.JSON(http.StatusOK, motors)
}

func (h *MotorHandler) Brands(c echo.Context) error {
	brands, err := h.svc.Brands(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch brands"))
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *MotorHandler) Get(c echo.Context) error {
	m, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrNotFound {
			return serviceError(c, err, "motor")
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch motor"))
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MotorHandler) Create(c echo.Context) error {
	var body motorBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	m, err := h.svc.Create(c.Request().Context(), body.input())
	if err != nil {
		return serviceError(c, err, "motor")
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MotorHandler) Update(c echo.Context) error {
	var body motorBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	m, err := h.svc.Update(c.Request().Context(), c.Param("id"), body.input())
	if err != nil {
		return serviceError(c, err, "motor")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MotorHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if err == service.ErrNotFound {
			return serviceError(c, err, "motor")
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete motor"))
	}
	return c.NoContent(http.StatusNoContent)
}

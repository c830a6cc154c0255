package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wahyusaputra/motorshop-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// serviceError maps the service layer's sentinel errors onto the shared error
// envelope. resource names the looked-up thing for not-found wording; anything
// unmapped is treated as a validation failure and echoed back.
func serviceError(c echo.Context, err error, resource string) error {
	switch err {
	case service.ErrNotFound:
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", resource+" not found"))
	case service.ErrForbidden:
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case service.ErrEmailTaken:
		return c.JSON(http.StatusConflict, NewErrorResponse("email_taken", "email already registered"))
	case service.ErrDeliveryExists:
		return c.JSON(http.StatusConflict, NewErrorResponse("delivery_exists", "delivery already assigned"))
	case service.ErrInsufficientStock:
		return c.JSON(http.StatusConflict, NewErrorResponse("insufficient_stock", "not enough stock"))
	case service.ErrInvalidCredentials:
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("invalid_credentials", "invalid credentials"))
	case service.ErrGoogleAccount:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("google_account", "account uses Google sign-in"))
	case service.ErrInvalidTransition:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_transition", "status change not allowed"))
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
}

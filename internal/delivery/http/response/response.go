// Package response writes the unified JSON envelope of the HTTP API.
package response

import (
	"net/http"

	deliverycontext "checker/internal/delivery/context"
	domainerrors "checker/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure
type Response struct {
	Success   bool                    `json:"success"`
	Code      int                     `json:"code"`    // HTTP status code
	Message   string                  `json:"message"` // User-friendly message
	RequestID string                  `json:"request_id,omitempty"`
	Data      any                     `json:"data,omitempty"`
	Error     *domainerrors.ErrorInfo `json:"error,omitempty"`
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		RequestID: deliverycontext.GetRequestID(c),
		Data:      data,
	})
}

// Error error response
func Error(c echo.Context, statusCode int, info *domainerrors.ErrorInfo, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success:   false,
		Code:      statusCode,
		Message:   message,
		RequestID: deliverycontext.GetRequestID(c),
		Error:     info,
	})
}

// BindingError reports a request body or query that could not be decoded.
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, &domainerrors.ErrorInfo{Code: "INVALID_INPUT"}, message)
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, &domainerrors.ErrorInfo{Code: domainerrors.ErrInternalError.ErrorCode()}, message)
}

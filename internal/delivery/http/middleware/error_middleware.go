// Package middleware holds the HTTP specific echo middleware.
package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "checker/internal/delivery/context"
	"checker/internal/delivery/http/response"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware renders handler errors as the unified response envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		info := domainerrors.Info(appErr)
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.Any("error", err), slog.String("path", c.Request().URL.Path))
			// Server side details stay in the logs.
			info.Details = ""
		}
		_ = response.Error(c, appErr.HTTPCode(), info, appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, &domainerrors.ErrorInfo{Code: "HTTP_ERROR"}, message)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, "Internal server error, please try again later")
}

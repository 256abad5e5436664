package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "checker/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRequestID(t *testing.T, header string) (string, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var fromCtx string
	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := mw.Process(func(c echo.Context) error {
		fromCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		assert.NotNil(t, deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil))
		assert.Equal(t, fromCtx, deliverycontext.GetRequestID(c))

		return nil
	})(c)
	require.NoError(t, err)

	return fromCtx, rec.Header().Get(deliverycontext.HeaderXRequestID)
}

func TestRequestIDMiddleware_ReusesClientID(t *testing.T) {
	fromCtx, header := runRequestID(t, "client-id")

	assert.Equal(t, "client-id", fromCtx)
	assert.Equal(t, "client-id", header)
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	fromCtx, header := runRequestID(t, "")

	_, err := uuid.Parse(fromCtx)
	require.NoError(t, err)
	assert.Equal(t, fromCtx, header)
}

func TestRequestIDMiddleware_ReplacesOversizedID(t *testing.T) {
	fromCtx, _ := runRequestID(t, strings.Repeat("x", maxRequestIDLength+1))

	_, err := uuid.Parse(fromCtx)
	require.NoError(t, err)
}

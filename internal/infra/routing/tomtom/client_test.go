package tomtom

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"checker/config"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/errors"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoute = `{
  "formatVersion": "0.0.12",
  "routes": [{
    "summary": {"lengthInMeters": 1879, "travelTimeInSeconds": 400, "trafficDelayInSeconds": 0,
                "departureTime": "2026-10-17T10:00:00+02:00", "arrivalTime": "2026-10-17T10:06:40+02:00"},
    "legs": [{
      "summary": {"lengthInMeters": 1879, "travelTimeInSeconds": 400},
      "points": [{"latitude": 52.50931, "longitude": 13.42936}, {"latitude": 52.50904, "longitude": 13.42912},
                 {"latitude": 52.50274, "longitude": 13.43872}]
    }],
    "sections": [{"startPointIndex": 0, "endPointIndex": 2, "sectionType": "TRAVEL_MODE", "travelMode": "car"}]
  }]
}`

func newTestClient(t *testing.T, srv *httptest.Server, retries uint64) *Client {
	t.Helper()

	c, err := NewClient(&config.TomTomConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		TravelMode: "car",
		Timeout:    time.Second,
		MaxRetries: retries,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), WithRetryBase(time.Millisecond))
	require.NoError(t, err)

	return c
}

func TestNewClient_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewClient(nil, logger)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidConfiguration))

	_, err = NewClient(&config.TomTomConfig{BaseURL: "https://api.tomtom.com"}, logger)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidConfiguration))

	_, err = NewClient(&config.TomTomConfig{APIKey: "k"}, logger)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidConfiguration))
}

func TestClient_CalculateRoute(t *testing.T) {
	var gotPath, gotKey, gotMode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotMode = r.URL.Query().Get("travelMode")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleRoute)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	resp, err := c.CalculateRoute(context.Background(), orb.Point{13.42936, 52.50931}, orb.Point{13.43872, 52.50274})
	require.NoError(t, err)

	assert.Equal(t, "/routing/1/calculateRoute/52.509310,13.429360:52.502740,13.438720/json", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "car", gotMode)

	require.Len(t, resp.Routes, 1)
	route := resp.Routes[0]
	assert.Equal(t, 1879, route.Summary.LengthInMeters)
	assert.Equal(t, 400, route.Summary.TravelTimeInSeconds)
	require.Len(t, route.Sections, 1)
	assert.Equal(t, "TRAVEL_MODE", route.Sections[0].SectionType)

	ls := route.LineString()
	require.Len(t, ls, 3)
	assert.Equal(t, orb.Point{13.42936, 52.50931}, ls[0])
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
		_, _ = io.WriteString(w, sampleRoute)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 3)
	_, err := c.CalculateRoute(context.Background(), orb.Point{0, 0}, orb.Point{1, 1})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 2)
	_, err := c.CalculateRoute(context.Background(), orb.Point{0, 0}, orb.Point{1, 1})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"formatVersion":"0.0.1","error":{"description":"Invalid request: invalid location"}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 3)
	_, err := c.CalculateRoute(context.Background(), orb.Point{0, 0}, orb.Point{1, 1})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.False(t, statusErr.Retryable())
	assert.Contains(t, err.Error(), "invalid location")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_DoesNotRetryMalformedBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"routes": [`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 3)
	_, err := c.CalculateRoute(context.Background(), orb.Point{0, 0}, orb.Point{1, 1})

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_TransportErrorHidesAPIKey(t *testing.T) {
	const apiKey = "SUPERSECRETKEY"

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	var logs bytes.Buffer
	c, err := NewClient(&config.TomTomConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Timeout:    time.Second,
		MaxRetries: 1,
	}, slog.New(slog.NewTextHandler(&logs, nil)), WithRetryBase(time.Millisecond))
	require.NoError(t, err)

	_, err = c.CalculateRoute(context.Background(), orb.Point{0, 0}, orb.Point{1, 1})
	require.Error(t, err)

	assert.NotContains(t, err.Error(), apiKey)
	assert.Contains(t, err.Error(), "key="+redactedValue)
	assert.Contains(t, logs.String(), "tomtom request failed")
	assert.NotContains(t, logs.String(), apiKey)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t,
		"https://api.tomtom.com/routing/1/calculateRoute/1,2:3,4/json?key=REDACTED&travelMode=car",
		redactURL("https://api.tomtom.com/routing/1/calculateRoute/1,2:3,4/json?key=abc&travelMode=car"),
	)
	assert.Equal(t, "https://api.tomtom.com/health", redactURL("https://api.tomtom.com/health"))
}

func TestRoute_LineStringSkipsSharedLegBoundary(t *testing.T) {
	r := Route{Legs: []Leg{
		{Points: []Point{{Latitude: 1, Longitude: 2}, {Latitude: 3, Longitude: 4}}},
		{Points: []Point{{Latitude: 3, Longitude: 4}, {Latitude: 5, Longitude: 6}}},
	}}

	assert.Equal(t, orb.LineString{{2, 1}, {4, 3}, {6, 5}}, r.LineString())
}

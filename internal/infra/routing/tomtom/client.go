package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"checker/config"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/errors"

	"github.com/paulmach/orb"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRetryBase    = 200 * time.Millisecond
	defaultRetryCap     = 2 * time.Second
	maxErrorBodyBytes   = 4 << 10
	maxSuccessBodyBytes = 8 << 20
	redactedValue       = "REDACTED"
)

// Client calls calculateRoute. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	travelMode string
	maxRetries uint64
	retryBase  time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryBase sets the first backoff interval.
func WithRetryBase(d time.Duration) Option {
	return func(c *Client) { c.retryBase = d }
}

// NewClient builds a client from the tomtom config section.
func NewClient(cfg *config.TomTomConfig, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, domainerrors.ErrInvalidConfiguration.WrapMessage("tomtom config is missing")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domainerrors.ErrInvalidConfiguration.WrapMessage("tomtom api key is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, domainerrors.ErrInvalidConfiguration.WrapMessage("tomtom base url is invalid")
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		travelMode: cfg.TravelMode,
		maxRetries: cfg.MaxRetries,
		retryBase:  defaultRetryBase,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// CalculateRoute asks for the fastest route between from and to. Server errors
// and 429 are retried with exponential backoff; other 4xx are returned as is.
func (c *Client) CalculateRoute(ctx context.Context, from, to orb.Point) (*CalculateRouteResponse, error) {
	endpoint := c.routeURL(from, to)

	backoff := retry.NewExponential(c.retryBase)
	backoff = retry.WithCappedDuration(defaultRetryCap, backoff)
	backoff = retry.WithMaxRetries(c.maxRetries, backoff)

	var out *CalculateRouteResponse
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		resp, err := c.do(ctx, endpoint)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.Retryable() {
				return err
			}
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				return err
			}
			c.logger.WarnContext(ctx, "tomtom request failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)

			return retry.RetryableError(err)
		}
		out = resp

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) routeURL(from, to orb.Point) string {
	locations := fmt.Sprintf("%s,%s:%s,%s",
		formatCoord(from.Lat()), formatCoord(from.Lon()),
		formatCoord(to.Lat()), formatCoord(to.Lon()),
	)

	q := url.Values{}
	q.Set("key", c.apiKey)
	if c.travelMode != "" {
		q.Set("travelMode", c.travelMode)
	}

	return c.baseURL + "/routing/1/calculateRoute/" + locations + "/json?" + q.Encode()
}

func (c *Client) do(ctx context.Context, endpoint string) (*CalculateRouteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WithStack(redactURLError(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(redactURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

		return nil, newStatusError(resp.StatusCode, body)
	}

	var out CalculateRouteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSuccessBodyBytes)).Decode(&out); err != nil {
		return nil, errors.WithStack(&DecodeError{err: err})
	}

	return &out, nil
}

// DecodeError is a 200 answer whose body is not a calculateRoute response.
// Fetching it again returns the same body, so it is never retried.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string {
	return "tomtom: decode calculateRoute response: " + e.err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// redactURLError masks the api key carried in the query of a *url.Error so
// transport failures can be logged and returned.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	return &url.Error{Op: urlErr.Op, URL: redactURL(urlErr.URL), Err: urlErr.Err}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparsable url]"
	}

	q := u.Query()
	if q.Has("key") {
		q.Set("key", redactedValue)
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// StatusError is a non-200 answer from the provider.
type StatusError struct {
	StatusCode  int
	Description string
}

func newStatusError(code int, body []byte) *StatusError {
	e := &StatusError{StatusCode: code}

	var er ErrorResponse
	if json.Unmarshal(body, &er) == nil {
		e.Description = er.Error.Description
		if e.Description == "" && er.DetailedError != nil {
			e.Description = er.DetailedError.Message
		}
	}

	return e
}

func (e *StatusError) Error() string {
	if e.Description == "" {
		return "tomtom: status " + strconv.Itoa(e.StatusCode)
	}

	return "tomtom: status " + strconv.Itoa(e.StatusCode) + ": " + e.Description
}

// Retryable reports whether repeating the request may succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

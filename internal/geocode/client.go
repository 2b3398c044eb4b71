// Package geocode implements the client for the GraphHopper geocoding API:
// it resolves a free-text place name to a coordinate and display name with a
// single HTTP GET per call.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/fantastic-tour/service-routing/internal/metrics"
	"github.com/fantastic-tour/service-routing/internal/upstream"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public GraphHopper geocoding endpoint.
	DefaultBaseURL = "https://graphhopper.com/api/1/geocode"
	// DefaultTimeout bounds one geocoding round trip.
	DefaultTimeout = 10 * time.Second
	// DefaultRateLimit keeps the client inside the free-tier request budget.
	DefaultRateLimit = rate.Limit(5.0)

	apiName = "geocoding"
)

// Client handles communication with the geocoding API. It performs exactly
// one outbound GET per Geocode call and never retries internally; callers
// needing retries wrap it (see application.RetryingGeocoder).
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit sets a custom rate limit in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a geocoding client for the given endpoint and API key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(DefaultRateLimit, 1),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// geocodeResponse mirrors the upstream payload. Point is a pointer so a
// missing field is distinguishable from a zero coordinate.
type geocodeResponse struct {
	Hits    []geocodeHit `json:"hits"`
	Message string       `json:"message"`
}

type geocodeHit struct {
	Point    *geocodePoint `json:"point"`
	Name     string        `json:"name"`
	Country  string        `json:"country"`
	State    string        `json:"state"`
	OSMValue string        `json:"osm_value"`
}

type geocodePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode resolves locationText to a Place. The text is expected to have
// passed planning.ValidateLocationText already; the client re-validates
// defensively and returns an invalid_input failure instead of panicking when
// the caller skipped that step.
func (c *Client) Geocode(ctx context.Context, locationText string) (*planning.Place, error) {
	if err := planning.ValidateLocationText(locationText); err != nil {
		return nil, planning.NewError(planning.KindInvalidInput, "geocode called with invalid input: %v", err)
	}

	params := url.Values{}
	params.Set("q", locationText)
	params.Set("limit", "1")
	params.Set("key", c.apiKey)
	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	place, err := c.doGeocode(ctx, requestURL, locationText)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(apiName, string(planning.KindOf(err))).Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(apiName, "success").Inc()
	return place, nil
}

func (c *Client) doGeocode(ctx context.Context, requestURL, locationText string) (*planning.Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, planning.NewError(planning.KindConnectionError, "rate limiter: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, planning.NewError(planning.KindConnectionError, "create request: %v", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(apiName).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, upstream.TransportError(apiName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.TransportError(apiName, err)
	}

	var payload geocodeResponse
	if resp.StatusCode != http.StatusOK {
		// Best effort: the upstream error body carries a message field.
		_ = json.Unmarshal(body, &payload)
		return nil, upstream.StatusError(apiName, resp.StatusCode, payload.Message)
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, planning.NewError(planning.KindMalformedResponse, "decode geocoding response: %v", err)
	}

	if len(payload.Hits) == 0 {
		return nil, planning.NewError(planning.KindNotFound, "no results found for %q", locationText)
	}

	hit := payload.Hits[0]
	if hit.Point == nil {
		return nil, planning.NewError(planning.KindMalformedResponse, "geocoding hit missing point for %q", locationText)
	}

	coord, err := planning.NewCoordinate(hit.Point.Lat, hit.Point.Lng)
	if err != nil {
		return nil, planning.NewError(planning.KindMalformedResponse,
			"geocoding returned out-of-range point for %q: lat=%v lng=%v", locationText, hit.Point.Lat, hit.Point.Lng)
	}

	displayName := planning.ComposeDisplayName(hit.Name, hit.State, hit.Country, "Unknown")

	c.logger.Debug("geocoding successful",
		zap.String("query", locationText),
		zap.Float64("lat", coord.Latitude),
		zap.Float64("lng", coord.Longitude),
		zap.String("display_name", displayName),
		zap.Duration("latency", time.Since(start)),
	)

	return &planning.Place{Coordinate: coord, DisplayName: displayName}, nil
}

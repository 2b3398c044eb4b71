// Package routing implements the client for the GraphHopper routing API: it
// resolves two coordinates and a travel mode to a route (distance, duration,
// turn list, geometry) with a single HTTP GET per call.
package routing

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
	// DefaultBaseURL is the public GraphHopper routing endpoint.
	DefaultBaseURL = "https://graphhopper.com/api/1/route"
	// DefaultTimeout bounds one routing round trip. Routing is slower than
	// geocoding upstream, hence the larger default.
	DefaultTimeout = 15 * time.Second
	// DefaultRateLimit keeps the client inside the free-tier request budget.
	DefaultRateLimit = rate.Limit(5.0)

	apiName = "routing"
)

// Client handles communication with the routing API. One outbound GET per
// Route call, no internal retries; callers needing retries wrap it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	vehicles   planning.VehicleSet
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

// WithVehicles sets the allow-list used for the defensive vehicle re-check.
func WithVehicles(vehicles planning.VehicleSet) Option {
	return func(c *Client) {
		c.vehicles = vehicles
	}
}

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a routing client for the given endpoint and API key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		vehicles:   planning.ExtendedVehicles(),
		limiter:    rate.NewLimiter(DefaultRateLimit, 1),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// routeResponse mirrors the upstream payload. Required numeric fields are
// pointers so a missing field is distinguishable from zero.
type routeResponse struct {
	Paths   []routePath `json:"paths"`
	Message string      `json:"message"`
}

type routePath struct {
	Distance     *float64           `json:"distance"`
	Time         *float64           `json:"time"`
	Instructions []routeInstruction `json:"instructions"`
	Points       *routePoints       `json:"points"`
}

type routeInstruction struct {
	Text     *string  `json:"text"`
	Distance *float64 `json:"distance"`
}

type routePoints struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// Route fetches a route for the request. Both coordinates are expected to
// have passed planning.ValidateCoordinate and the vehicle the allow-list
// check; the client re-validates defensively and returns an invalid_input
// failure when the caller skipped validation.
func (c *Client) Route(ctx context.Context, req planning.RouteRequest) (*planning.Route, error) {
	// The upstream is case-sensitive about vehicle tokens.
	req.Vehicle = planning.NormalizeVehicle(string(req.Vehicle))
	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("vehicle", string(req.Vehicle))
	// points_encoded=false makes the upstream return plain coordinate arrays
	// instead of an encoded polyline.
	params.Set("points_encoded", "false")
	// Origin must be the first point parameter: the upstream treats the
	// first point as the departure.
	params.Add("point", req.Origin.String())
	params.Add("point", req.Destination.String())
	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	route, err := c.doRoute(ctx, requestURL, req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(apiName, string(planning.KindOf(err))).Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(apiName, "success").Inc()
	return route, nil
}

func (c *Client) validateRequest(req planning.RouteRequest) error {
	if err := planning.ValidateCoordinate(req.Origin.Latitude, req.Origin.Longitude); err != nil {
		return planning.NewError(planning.KindInvalidInput, "route called with invalid origin: %v", err)
	}
	if err := planning.ValidateCoordinate(req.Destination.Latitude, req.Destination.Longitude); err != nil {
		return planning.NewError(planning.KindInvalidInput, "route called with invalid destination: %v", err)
	}
	if err := planning.ValidateVehicle(string(req.Vehicle), c.vehicles); err != nil {
		return planning.NewError(planning.KindInvalidInput, "route called with invalid vehicle: %v", err)
	}
	return nil
}

func (c *Client) doRoute(ctx context.Context, requestURL string, req planning.RouteRequest) (*planning.Route, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, planning.NewError(planning.KindConnectionError, "rate limiter: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, planning.NewError(planning.KindConnectionError, "create request: %v", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.UpstreamRequestDuration.WithLabelValues(apiName).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, upstream.TransportError(apiName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.TransportError(apiName, err)
	}

	var payload routeResponse
	if resp.StatusCode != http.StatusOK {
		_ = json.Unmarshal(body, &payload)
		return nil, upstream.StatusError(apiName, resp.StatusCode, payload.Message)
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, planning.NewError(planning.KindMalformedResponse, "decode routing response: %v", err)
	}

	if len(payload.Paths) == 0 {
		return nil, planning.NewError(planning.KindNoRouteFound,
			"no route found between %s and %s", req.Origin, req.Destination)
	}

	route, err := toRoute(payload.Paths[0])
	if err != nil {
		return nil, err
	}

	c.logger.Debug("routing successful",
		zap.String("vehicle", string(req.Vehicle)),
		zap.Float64("distance_meters", route.DistanceMeters),
		zap.Float64("duration_millis", route.DurationMillis),
		zap.Int("instructions", len(route.Instructions)),
		zap.Duration("latency", time.Since(start)),
	)

	return route, nil
}

// toRoute converts the first upstream path into the domain route. Distance
// and time are mandatory; the turn list and geometry are optional, and
// individually malformed instruction entries are skipped rather than failing
// the whole result.
func toRoute(path routePath) (*planning.Route, error) {
	if path.Distance == nil || *path.Distance < 0 {
		return nil, planning.NewError(planning.KindMalformedResponse, "path missing or invalid distance")
	}
	if path.Time == nil || *path.Time < 0 {
		return nil, planning.NewError(planning.KindMalformedResponse, "path missing or invalid time")
	}

	instructions := make([]planning.Instruction, 0, len(path.Instructions))
	for _, in := range path.Instructions {
		if in.Text == nil || in.Distance == nil {
			continue
		}
		instructions = append(instructions, planning.Instruction{
			Text:           *in.Text,
			DistanceMeters: *in.Distance,
		})
	}

	var points []planning.PathPoint
	if path.Points != nil {
		points = make([]planning.PathPoint, 0, len(path.Points.Coordinates))
		for _, pair := range path.Points.Coordinates {
			if len(pair) < 2 {
				continue
			}
			// Upstream order is (lng, lat); carried through verbatim.
			points = append(points, planning.PathPoint{Lng: pair[0], Lat: pair[1]})
		}
	}

	return &planning.Route{
		DistanceMeters: *path.Distance,
		DurationMillis: *path.Time,
		Instructions:   instructions,
		Points:         points,
	}, nil
}

package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRequest = planning.RouteRequest{
	Origin:      planning.Coordinate{Latitude: 14.5995, Longitude: 120.9842},
	Destination: planning.Coordinate{Latitude: 14.676, Longitude: 121.0437},
	Vehicle:     planning.VehicleCar,
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", WithRateLimit(1000))
}

func TestClient_Route_Success(t *testing.T) {
	var gotParams map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		_, _ = w.Write([]byte(`{"paths":[{
			"distance": 5000.0,
			"time": 600000.0,
			"instructions": [
				{"text": "Head north", "distance": 200.0},
				{"text": "Arrive at destination", "distance": 0.0}
			],
			"points": {"coordinates": [[120.9842, 14.5995], [121.0437, 14.676]]}
		}]}`))
	})

	route, err := client.Route(context.Background(), testRequest)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, route.DistanceMeters)
	assert.Equal(t, 600000.0, route.DurationMillis)
	require.Len(t, route.Instructions, 2)
	assert.Equal(t, "Head north", route.Instructions[0].Text)
	assert.Equal(t, 200.0, route.Instructions[0].DistanceMeters)

	// Geometry is carried through in upstream (lng, lat) order.
	require.Len(t, route.Points, 2)
	assert.Equal(t, 120.9842, route.Points[0].Lng)
	assert.Equal(t, 14.5995, route.Points[0].Lat)

	// Origin must be the first point parameter.
	require.Len(t, gotParams["point"], 2)
	assert.Equal(t, "14.5995,120.9842", gotParams["point"][0])
	assert.Equal(t, "14.676,121.0437", gotParams["point"][1])
	assert.Equal(t, "car", gotParams["vehicle"][0])
	assert.Equal(t, "false", gotParams["points_encoded"][0])
	assert.Equal(t, "test-key", gotParams["key"][0])
}

func TestClient_Route_NormalizesVehicleToken(t *testing.T) {
	var gotVehicle string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotVehicle = r.URL.Query().Get("vehicle")
		_, _ = w.Write([]byte(`{"paths":[{"distance": 1000.0, "time": 60000.0}]}`))
	})

	req := testRequest
	req.Vehicle = "FOOT"
	_, err := client.Route(context.Background(), req)
	require.NoError(t, err)

	// The upstream is case-sensitive; the wire always carries lowercase.
	assert.Equal(t, "foot", gotVehicle)
}

func TestClient_Route_NoPaths(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paths":[]}`))
	})

	_, err := client.Route(context.Background(), testRequest)
	require.Error(t, err)
	assert.Equal(t, planning.KindNoRouteFound, planning.KindOf(err))
}

func TestClient_Route_MissingDistance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paths":[{"time": 600000.0}]}`))
	})

	_, err := client.Route(context.Background(), testRequest)
	require.Error(t, err)
	assert.Equal(t, planning.KindMalformedResponse, planning.KindOf(err))
}

func TestClient_Route_MissingTime(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paths":[{"distance": 5000.0}]}`))
	})

	_, err := client.Route(context.Background(), testRequest)
	require.Error(t, err)
	assert.Equal(t, planning.KindMalformedResponse, planning.KindOf(err))
}

func TestClient_Route_SkipsMalformedInstructions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paths":[{
			"distance": 1000.0,
			"time": 60000.0,
			"instructions": [
				{"text": "Good step", "distance": 100.0},
				{"distance": 50.0},
				{"text": "No distance"}
			],
			"points": {"coordinates": [[1.0], [2.0, 3.0]]}
		}]}`))
	})

	route, err := client.Route(context.Background(), testRequest)
	require.NoError(t, err)

	// Entries missing text or distance are dropped; the route still succeeds.
	require.Len(t, route.Instructions, 1)
	assert.Equal(t, "Good step", route.Instructions[0].Text)

	// Same for short coordinate pairs.
	require.Len(t, route.Points, 1)
	assert.Equal(t, 2.0, route.Points[0].Lng)
}

func TestClient_Route_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind planning.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, planning.KindAuthError},
		{"rate limited", http.StatusTooManyRequests, planning.KindRateLimited},
		{"unavailable", http.StatusServiceUnavailable, planning.KindUpstreamUnavailable},
		{"bad request", http.StatusBadRequest, planning.KindUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})

			_, err := client.Route(context.Background(), testRequest)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, planning.KindOf(err))
		})
	}
}

func TestClient_Route_RejectsInvalidRequest(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	bad := testRequest
	bad.Origin = planning.Coordinate{Latitude: 200, Longitude: 0}
	_, err := client.Route(context.Background(), bad)
	require.Error(t, err)
	assert.Equal(t, planning.KindInvalidInput, planning.KindOf(err))

	bad = testRequest
	bad.Vehicle = "submarine"
	_, err = client.Route(context.Background(), bad)
	require.Error(t, err)
	assert.Equal(t, planning.KindInvalidInput, planning.KindOf(err))

	assert.False(t, called, "invalid requests must not reach the network")
}

func TestClient_Route_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paths": oops`))
	})

	_, err := client.Route(context.Background(), testRequest)
	require.Error(t, err)
	assert.Equal(t, planning.KindMalformedResponse, planning.KindOf(err))
}

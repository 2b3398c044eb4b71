//go:build integration

package main_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fantastic-tour/service-routing/internal/application"
	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/fantastic-tour/service-routing/internal/geocode"
	"github.com/fantastic-tour/service-routing/internal/handler"
	"github.com/fantastic-tour/service-routing/internal/health"
	"github.com/fantastic-tour/service-routing/internal/middleware"
	"github.com/fantastic-tour/service-routing/internal/routing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// geocodeHit is one canned geocoding result served by the stub upstream.
type geocodeHit struct {
	Lat     float64
	Lng     float64
	Name    string
	State   string
	Country string
}

// stubUpstream is a fake GraphHopper serving both APIs from fixture tables.
type stubUpstream struct {
	hits         map[string]geocodeHit
	routeStatus  int
	routeBody    string
	geocodeCalls int
	routeCalls   int
	lastRoutePts []string
}

func newStubUpstream() *stubUpstream {
	return &stubUpstream{
		hits: map[string]geocodeHit{
			"Manila":      {Lat: 14.5995, Lng: 120.9842, Name: "Manila", State: "Metro Manila", Country: "Philippines"},
			"Quezon City": {Lat: 14.676, Lng: 121.0437, Name: "Quezon City", State: "Metro Manila", Country: "Philippines"},
		},
		routeStatus: http.StatusOK,
		routeBody: `{"paths":[{
			"distance": 5000.0,
			"time": 600000.0,
			"instructions": [
				{"text": "Head north", "distance": 200.0},
				{"text": "Arrive at destination", "distance": 0.0}
			],
			"points": {"coordinates": [[120.9842, 14.5995], [121.0437, 14.676]]}
		}]}`,
	}
}

func (s *stubUpstream) geocodeHandler(w http.ResponseWriter, r *http.Request) {
	s.geocodeCalls++
	query := r.URL.Query().Get("q")
	hit, ok := s.hits[query]
	if !ok {
		_, _ = w.Write([]byte(`{"hits":[]}`))
		return
	}
	resp := map[string]any{
		"hits": []map[string]any{{
			"point":   map[string]float64{"lat": hit.Lat, "lng": hit.Lng},
			"name":    hit.Name,
			"state":   hit.State,
			"country": hit.Country,
		}},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *stubUpstream) routeHandler(w http.ResponseWriter, r *http.Request) {
	s.routeCalls++
	s.lastRoutePts = r.URL.Query()["point"]
	w.WriteHeader(s.routeStatus)
	_, _ = w.Write([]byte(s.routeBody))
}

// setupStack starts stub upstreams and wires the full HTTP stack against
// them, the same way cmd/server does.
func setupStack(t *testing.T, stub *stubUpstream) *gin.Engine {
	t.Helper()

	geocodeServer := httptest.NewServer(http.HandlerFunc(stub.geocodeHandler))
	t.Cleanup(geocodeServer.Close)
	routeServer := httptest.NewServer(http.HandlerFunc(stub.routeHandler))
	t.Cleanup(routeServer.Close)

	log := zap.NewNop()
	geocoder := geocode.NewClient(geocodeServer.URL, "test-key", geocode.WithRateLimit(1000))
	router := routing.NewClient(routeServer.URL, "test-key", routing.WithRateLimit(1000))
	service := application.NewPlannerService(geocoder, router, planning.DefaultVehicles(), log)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())

	health.NewHandler("service-routing").RegisterRoutes(engine)
	handler.NewRouteHandler(service).RegisterRoutes(&engine.RouterGroup)

	return engine
}

// Package config loads service configuration from the environment via viper.
// All variables carry the TOUR_ prefix; only the GraphHopper API key is
// mandatory.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/spf13/viper"
)

// UpstreamConfig holds the connection settings for one GraphHopper API.
type UpstreamConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
}

// ServiceConfig holds all configuration for the routing service.
type ServiceConfig struct {
	Port     string
	AppEnv   string
	APIKey   string
	Geocode  UpstreamConfig
	Route    UpstreamConfig
	Vehicles planning.VehicleSet
}

// Load reads configuration from TOUR_-prefixed environment variables. It
// fails fast on a blank API key so the miss surfaces at startup instead of
// as an auth_error on the first request.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("TOUR")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("GEOCODE_TIMEOUT", "10s")
	v.SetDefault("ROUTE_TIMEOUT", "15s")
	v.SetDefault("UPSTREAM_RATE_LIMIT", 5.0)
	v.SetDefault("VEHICLES", "car,bike,foot")

	apiKey := strings.TrimSpace(v.GetString("API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("TOUR_API_KEY must be set to a GraphHopper API key")
	}

	vehicles := planning.NewVehicleSet(strings.Split(v.GetString("VEHICLES"), ",")...)
	if vehicles.Len() == 0 {
		return nil, fmt.Errorf("TOUR_VEHICLES must list at least one travel mode")
	}

	rateLimit := v.GetFloat64("UPSTREAM_RATE_LIMIT")
	if rateLimit <= 0 {
		return nil, fmt.Errorf("TOUR_UPSTREAM_RATE_LIMIT must be positive, got %v", rateLimit)
	}

	geocodeTimeout, err := time.ParseDuration(v.GetString("GEOCODE_TIMEOUT"))
	if err != nil || geocodeTimeout <= 0 {
		return nil, fmt.Errorf("TOUR_GEOCODE_TIMEOUT must be a positive duration: %q", v.GetString("GEOCODE_TIMEOUT"))
	}
	routeTimeout, err := time.ParseDuration(v.GetString("ROUTE_TIMEOUT"))
	if err != nil || routeTimeout <= 0 {
		return nil, fmt.Errorf("TOUR_ROUTE_TIMEOUT must be a positive duration: %q", v.GetString("ROUTE_TIMEOUT"))
	}

	return &ServiceConfig{
		Port:   v.GetString("SERVICE_PORT"),
		AppEnv: v.GetString("APP_ENV"),
		APIKey: apiKey,
		Geocode: UpstreamConfig{
			BaseURL:   v.GetString("GEOCODE_URL"),
			Timeout:   geocodeTimeout,
			RateLimit: rateLimit,
		},
		Route: UpstreamConfig{
			BaseURL:   v.GetString("ROUTE_URL"),
			Timeout:   routeTimeout,
			RateLimit: rateLimit,
		},
		Vehicles: vehicles,
	}, nil
}

package planning

import "context"

// Geocoder resolves a free-text place name to a coordinate and display name.
type Geocoder interface {
	Geocode(ctx context.Context, locationText string) (*Place, error)
}

// Router computes a route between two validated coordinates for a travel mode.
type Router interface {
	Route(ctx context.Context, req RouteRequest) (*Route, error)
}

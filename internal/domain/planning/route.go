package planning

import "strings"

// Place is the outcome of geocoding a free-text query: the resolved
// coordinate plus a human-readable display name. Immutable once produced.
type Place struct {
	Coordinate  Coordinate `json:"coordinate"`
	DisplayName string     `json:"display_name"`
}

// ComposeDisplayName joins the present segments of {name, state, country}
// with ", ", omitting empty ones. When the upstream omits the name entirely,
// fallback is used ("Unknown" by convention, or the raw query).
func ComposeDisplayName(name, state, country, fallback string) string {
	if name == "" {
		name = fallback
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{name, state, country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// RouteRequest carries two validated coordinates and a travel mode to the
// routing client. Origin order matters: the upstream treats the first point
// as the departure.
type RouteRequest struct {
	Origin      Coordinate
	Destination Coordinate
	Vehicle     Vehicle
}

// Instruction is one turn-by-turn step. Order within a route is traversal
// order and is significant; instructions are never reordered or deduplicated.
type Instruction struct {
	Text           string  `json:"text"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Route is a successfully computed route. All entities here are
// request-scoped values: created by one planning call, consumed by
// presentation, then discarded.
type Route struct {
	DistanceMeters float64       `json:"distance_meters"`
	DurationMillis float64       `json:"duration_millis"`
	Instructions   []Instruction `json:"instructions"`
	// Points is the optional route geometry in upstream (lng, lat) order.
	Points []PathPoint `json:"points,omitempty"`
}

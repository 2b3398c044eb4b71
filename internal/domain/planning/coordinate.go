package planning

import "strconv"

// Coordinate is an immutable WGS84 point produced by geocoding. It is never
// constructed with out-of-range values; producers validate first.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// NewCoordinate validates the latitude/longitude pair and constructs a
// Coordinate from it.
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if err := ValidateCoordinate(lat, lng); err != nil {
		return Coordinate{}, err
	}
	return Coordinate{Latitude: lat, Longitude: lng}, nil
}

// ValidateCoordinate checks that the pair lies within WGS84 bounds
// (inclusive on both ends).
func ValidateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return NewError(KindOutOfRange, "coordinate out of range: lat=%v lng=%v", lat, lng)
	}
	return nil
}

// Equal reports whether two coordinates are bit-identical. Used to detect
// the same-location outcome before any routing call is made.
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Latitude == other.Latitude && c.Longitude == other.Longitude
}

// String renders the coordinate as "lat,lng", the form the routing API
// expects for its point parameters.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// PathPoint is one vertex of a route geometry, kept in the upstream's native
// (lng, lat) order. Callers doing geometric work must swap to (lat, lng)
// themselves.
type PathPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

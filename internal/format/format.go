// Package format renders route results for presentation: distances,
// durations, and the Google Maps deep link. All helpers are pure.
package format

import (
	"fmt"

	"github.com/fantastic-tour/service-routing/internal/domain/planning"
)

// UnitSystem selects between metric and imperial distance rendering.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.34
	feetPerMeter       = 3.28084
)

// ParseUnitSystem normalizes a unit token, defaulting to metric for the
// empty string and rejecting anything else.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case "":
		return Metric, nil
	case Metric, Imperial:
		return UnitSystem(s), nil
	default:
		return "", fmt.Errorf("invalid unit system %q, must be %q or %q", s, Metric, Imperial)
	}
}

// Distance renders meters in the requested unit system: kilometers above
// 1 km and plain meters below for metric; miles above a tenth of a mile and
// feet below for imperial.
func Distance(meters float64, units UnitSystem) string {
	if units == Imperial {
		miles := meters / metersPerMile
		if miles < 0.1 {
			return fmt.Sprintf("%.0f ft", meters*feetPerMeter)
		}
		return fmt.Sprintf("%.1f miles", miles)
	}
	if meters >= metersPerKilometer {
		return fmt.Sprintf("%.1f km", meters/metersPerKilometer)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// Duration renders a millisecond duration as "1h 01m" above an hour and
// "4m 05s" below. Zero formats as "0m 00s".
func Duration(millis float64) string {
	totalSeconds := int64(millis / 1000)
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}

// mapsTravelModes maps vehicle tokens to Google Maps travel modes. Modes
// Google has no equivalent for fall back to driving.
var mapsTravelModes = map[planning.Vehicle]string{
	planning.VehicleCar:  "driving",
	planning.VehicleBike: "bicycling",
	planning.VehicleFoot: "walking",
}

// MapsURL builds a Google Maps directions deep link for interactive viewing
// of the computed route in a browser.
func MapsURL(origin, destination planning.Coordinate, vehicle planning.Vehicle) string {
	mode, ok := mapsTravelModes[vehicle]
	if !ok {
		mode = "driving"
	}
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&origin=%s&destination=%s&travelmode=%s",
		origin, destination, mode,
	)
}

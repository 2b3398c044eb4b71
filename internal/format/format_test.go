package format

import (
	"testing"

	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitSystem(t *testing.T) {
	units, err := ParseUnitSystem("")
	require.NoError(t, err)
	assert.Equal(t, Metric, units)

	units, err = ParseUnitSystem("metric")
	require.NoError(t, err)
	assert.Equal(t, Metric, units)

	units, err = ParseUnitSystem("imperial")
	require.NoError(t, err)
	assert.Equal(t, Imperial, units)

	_, err = ParseUnitSystem("nautical")
	assert.Error(t, err)
}

func TestDistance_Metric(t *testing.T) {
	assert.Equal(t, "1.5 km", Distance(1500, Metric))
	assert.Equal(t, "500 m", Distance(500, Metric))
	assert.Equal(t, "1.0 km", Distance(1000, Metric))
	assert.Equal(t, "999 m", Distance(999, Metric))
	assert.Equal(t, "0 m", Distance(0, Metric))
}

func TestDistance_Imperial(t *testing.T) {
	assert.Equal(t, "1.0 miles", Distance(1609.34, Imperial))
	// 100 m is under a tenth of a mile, so feet.
	assert.Equal(t, "328 ft", Distance(100, Imperial))
	assert.Equal(t, "0 ft", Distance(0, Imperial))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "1h 01m", Duration(3661000))
	assert.Equal(t, "4m 05s", Duration(245000))
	assert.Equal(t, "0m 00s", Duration(0))
	assert.Equal(t, "0m 59s", Duration(59999))
	assert.Equal(t, "1m 00s", Duration(60000))
	assert.Equal(t, "2h 00m", Duration(7200000))
}

func TestMapsURL(t *testing.T) {
	origin := planning.Coordinate{Latitude: 14.5995, Longitude: 120.9842}
	dest := planning.Coordinate{Latitude: 14.676, Longitude: 121.0437}

	url := MapsURL(origin, dest, planning.VehicleBike)
	assert.Equal(t,
		"https://www.google.com/maps/dir/?api=1&origin=14.5995,120.9842&destination=14.676,121.0437&travelmode=bicycling",
		url)

	// Modes Google does not know fall back to driving.
	url = MapsURL(origin, dest, planning.VehicleTruck)
	assert.Contains(t, url, "travelmode=driving")

	url = MapsURL(origin, dest, planning.VehicleFoot)
	assert.Contains(t, url, "travelmode=walking")
}

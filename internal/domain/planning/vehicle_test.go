package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicleSet(t *testing.T) {
	set := NewVehicleSet("Car", " bike ", "", "car", "FOOT")

	assert.Equal(t, []string{"car", "bike", "foot"}, set.List())
	assert.Equal(t, 3, set.Len())
}

func TestVehicleSet_Contains(t *testing.T) {
	set := DefaultVehicles()

	assert.True(t, set.Contains("car"))
	assert.True(t, set.Contains("CAR"))
	assert.True(t, set.Contains("Bike"))
	assert.False(t, set.Contains("plane"))
	assert.False(t, set.Contains(""))
	assert.False(t, set.Contains("scooter"))
}

func TestExtendedVehicles(t *testing.T) {
	set := ExtendedVehicles()

	assert.True(t, set.Contains("scooter"))
	assert.True(t, set.Contains("truck"))
	assert.True(t, set.Contains("small_truck"))
}

func TestNormalizeVehicle(t *testing.T) {
	assert.Equal(t, VehicleFoot, NormalizeVehicle("FOOT"))
	assert.Equal(t, VehicleCar, NormalizeVehicle(" Car "))
	assert.Equal(t, VehicleSmallTruck, NormalizeVehicle("small_truck"))
}

func TestValidateVehicle(t *testing.T) {
	set := DefaultVehicles()

	assert.NoError(t, ValidateVehicle("car", set))
	assert.NoError(t, ValidateVehicle("FOOT", set))

	err := ValidateVehicle("plane", set)
	require.Error(t, err)
	assert.Equal(t, KindUnsupportedMode, KindOf(err))
	assert.Contains(t, err.Error(), "car, bike, foot")
}

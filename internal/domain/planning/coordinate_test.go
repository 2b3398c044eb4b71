package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"zero zero", 0, 0, false},
		{"manila", 14.5995, 120.9842, false},
		{"north pole", 90, 0, false},
		{"south pole", -90, 0, false},
		{"date line east", 0, 180, false},
		{"date line west", 0, -180, false},
		{"lat too high", 90.0001, 0, true},
		{"lat too low", -90.0001, 0, true},
		{"lng too high", 0, 180.0001, true},
		{"lng too low", 0, -180.0001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lat, tt.lng)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindOutOfRange, KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoordinate_Equal(t *testing.T) {
	a := Coordinate{Latitude: 14.5995, Longitude: 120.9842}
	b := Coordinate{Latitude: 14.5995, Longitude: 120.9842}
	c := Coordinate{Latitude: 14.5995, Longitude: 120.98420000001}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestCoordinate_String(t *testing.T) {
	c := Coordinate{Latitude: 14.5995, Longitude: 120.9842}
	assert.Equal(t, "14.5995,120.9842", c.String())

	zero := Coordinate{}
	assert.Equal(t, "0,0", zero.String())
}

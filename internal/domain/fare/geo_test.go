package fare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{Latitude: 40.7128, Longitude: -74.0060}, false},
		{"equator meridian", Coordinate{Latitude: 0, Longitude: 0}, false},
		{"latitude too high", Coordinate{Latitude: 90.1, Longitude: 0}, true},
		{"latitude too low", Coordinate{Latitude: -90.1, Longitude: 0}, true},
		{"longitude too high", Coordinate{Latitude: 0, Longitude: 180.1}, true},
		{"longitude too low", Coordinate{Latitude: 0, Longitude: -180.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDistanceKm(t *testing.T) {
	a := Coordinate{Latitude: 40.7128, Longitude: -74.0060}  // NYC
	b := Coordinate{Latitude: 34.0522, Longitude: -118.2437} // LA

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Zero(t, DistanceKm(a, a))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	})

	t.Run("known distance", func(t *testing.T) {
		// NYC to LA is roughly 3936 km great-circle.
		assert.InDelta(t, 3936, DistanceKm(a, b), 20)
	})
}

func TestOffset(t *testing.T) {
	origin := Coordinate{Latitude: 40.0, Longitude: -73.0}

	t.Run("unknown bearing rejected", func(t *testing.T) {
		_, err := Offset(origin, 100, Bearing("UP"))
		assert.Error(t, err)
	})

	t.Run("north moves latitude only", func(t *testing.T) {
		moved, err := Offset(origin, 100, BearingN)
		require.NoError(t, err)
		assert.Greater(t, moved.Latitude, origin.Latitude)
		assert.InDelta(t, origin.Longitude, moved.Longitude, 1e-9)
	})

	t.Run("east moves longitude only", func(t *testing.T) {
		moved, err := Offset(origin, 100, BearingE)
		require.NoError(t, err)
		assert.Greater(t, moved.Longitude, origin.Longitude)
		assert.InDelta(t, origin.Latitude, moved.Latitude, 1e-9)
	})

	t.Run("offset distance matches haversine within one percent", func(t *testing.T) {
		// Diagonal bearings apply the full delta on both axes, so the
		// displacement is sqrt(2) times the nominal distance.
		expected := map[Bearing]float64{
			BearingN: 1, BearingE: 1, BearingS: 1, BearingW: 1,
			BearingNE: math.Sqrt2, BearingNW: math.Sqrt2,
			BearingSE: math.Sqrt2, BearingSW: math.Sqrt2,
		}
		for _, bearing := range Bearings {
			for _, meters := range []float64{50, 152.4, 500} {
				moved, err := Offset(origin, meters, bearing)
				require.NoError(t, err)
				gotMeters := DistanceKm(origin, moved) * 1000
				assert.InEpsilon(t, meters*expected[bearing], gotMeters, 0.01,
					"bearing %s at %.1fm", bearing, meters)
			}
		}
	})
}

func TestFeetToMeters(t *testing.T) {
	assert.InDelta(t, 152.4, FeetToMeters(500), 1e-9)
	assert.Zero(t, FeetToMeters(0))
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(51.47, -0.4543, 51.47, -0.4543))
}

func TestHaversine_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"LAX area", 34.0, -118.0, 35.0, -117.5},
		{"across antimeridian", 10.0, 179.5, 10.5, -179.5},
		{"southern hemisphere", -33.9, 151.2, -37.8, 144.9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ab := Haversine(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			ba := Haversine(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
			assert.InDelta(t, ab, ba, 1e-9)
			assert.Greater(t, ab, 0.0)
		})
	}
}

func TestHaversine_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	assert.InDelta(t, 111.1949, Haversine(0, 0, 0, 1), 1e-3)
}

func TestHaversine_KnownLeg(t *testing.T) {
	assert.InDelta(t, 120.2647, Haversine(34.0, -118.0, 35.0, -117.5), 1e-3)
}

func TestPathDistance(t *testing.T) {
	assert.Equal(t, 0.0, PathDistance(nil))
	assert.Equal(t, 0.0, PathDistance([]Point{{Lat: 34, Lon: -118}}))

	leg := Haversine(0, 0, 0, 1)
	got := PathDistance([]Point{{0, 0}, {0, 1}, {0, 2}})
	assert.InDelta(t, 2*leg, got, 1e-9)
}

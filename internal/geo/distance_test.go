package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_Identity(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(-6.2, 106.8, -6.2, 106.8))
	assert.Equal(t, 0.0, HaversineDistance(0, 0, 0, 0))
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{-6.2, 106.8, -6.21, 106.81},
		{51.5, -0.12, 48.85, 2.35},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := HaversineDistance(p[0], p[1], p[2], p[3])
		ba := HaversineDistance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestHaversineDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lon1     float64
		lat2     float64
		lon2     float64
		expected float64
		delta    float64
	}{
		{name: "one degree of latitude", lat1: 0, lon1: 0, lat2: 1, lon2: 0, expected: 111194.93, delta: 0.01},
		{name: "one degree of longitude at equator", lat1: 0, lon1: 0, lat2: 0, lon2: 1, expected: 111194.93, delta: 0.01},
		{name: "across the antimeridian", lat1: 0, lon1: 179.5, lat2: 0, lon2: -179.5, expected: 111194.93, delta: 0.01},
		{name: "London to Paris", lat1: 51.5074, lon1: -0.1278, lat2: 48.8566, lon2: 2.3522, expected: 343556, delta: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestDistance(t *testing.T) {
	a := Point{Lat: -6.2, Lon: 106.8}
	b := Point{Lat: -6.2009, Lon: 106.8}
	assert.Equal(t, HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon), Distance(a, b))
	assert.InDelta(t, 100.0, Distance(a, b), 0.1)
}

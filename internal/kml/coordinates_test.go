package kml

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []domain.Coordinate
	}{
		{name: "empty", input: "   ", expected: nil},
		{name: "single with alt", input: "106.8,-6.2,12", expected: []domain.Coordinate{{Lon: 106.8, Lat: -6.2, Alt: 12}}},
		{name: "missing alt", input: "106.8,-6.2", expected: []domain.Coordinate{{Lon: 106.8, Lat: -6.2}}},
		{name: "bad alt", input: "106.8,-6.2,x", expected: []domain.Coordinate{{Lon: 106.8, Lat: -6.2}}},
		{
			name:  "mixed whitespace",
			input: "\n\t1,2,0\n 3,4,0\t5,6 ",
			expected: []domain.Coordinate{
				{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}, {Lon: 5, Lat: 6},
			},
		},
		{name: "drops bad lon", input: "abc,2,0 3,4,0", expected: []domain.Coordinate{{Lon: 3, Lat: 4}}},
		{name: "drops bad lat", input: "1,,0 3,4,0", expected: []domain.Coordinate{{Lon: 3, Lat: 4}}},
		{name: "drops single value", input: "1 3,4", expected: []domain.Coordinate{{Lon: 3, Lat: 4}}},
		{name: "drops NaN", input: "NaN,1 3,4", expected: []domain.Coordinate{{Lon: 3, Lat: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCoordinates(tt.input)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatPoint(t *testing.T) {
	assert.Equal(t, "106.8,-6.2,0", FormatPoint(domain.Coordinate{Lon: 106.8, Lat: -6.2, Alt: 30}))
	assert.Equal(t, "106.80005,-6.20005,0", FormatPoint(domain.Coordinate{Lon: 106.80005, Lat: -6.20005}))
	assert.Equal(t, "0", FormatNumber(0))
}

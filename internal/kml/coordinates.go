package kml

import (
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// ParseCoordinates parses KML coordinate text: whitespace-separated
// "lon,lat[,alt]" tuples. Tuples whose lon or lat is not a finite number
// are dropped. A missing or unparsable alt is 0.
func ParseCoordinates(text string) []domain.Coordinate {
	tuples := strings.Fields(text)
	if len(tuples) == 0 {
		return nil
	}
	out := make([]domain.Coordinate, 0, len(tuples))
	for _, tuple := range tuples {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			continue
		}
		lon, ok := parseNumber(parts[0])
		if !ok {
			continue
		}
		lat, ok := parseNumber(parts[1])
		if !ok {
			continue
		}
		c := domain.Coordinate{Lon: lon, Lat: lat}
		if len(parts) > 2 {
			if alt, ok := parseNumber(parts[2]); ok {
				c.Alt = alt
			}
		}
		out = append(out, c)
	}
	return out
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatNumber renders a coordinate component in its shortest form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPoint renders "lon,lat,0" for a Point element.
func FormatPoint(c domain.Coordinate) string {
	return FormatNumber(c.Lon) + "," + FormatNumber(c.Lat) + ",0"
}

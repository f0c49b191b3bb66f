package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by HaversineDistance.
const EarthRadiusMeters = 6371000.0

// metersPerDegree is the arc length of one degree of latitude.
const metersPerDegree = EarthRadiusMeters * math.Pi / 180

// Point is a WGS84 position.
type Point struct {
	Lat float64
	Lon float64
}

// HaversineDistance returns the great-circle distance in meters between two
// positions given in degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// Distance returns the haversine distance between two points.
func Distance(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

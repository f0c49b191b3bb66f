package geo

import "github.com/skelterjohn/geom"

// PointInPolygon reports whether pt lies inside ring using even-odd ray
// casting. X is longitude, Y is latitude. The ring is implicitly closed.
// Points exactly on an edge may go either way.
func PointInPolygon(pt Point, ring []Point) bool {
	inside := false
	x, y := pt.Lon, pt.Lat
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Bounds is an axis-aligned bounding box in lon/lat space.
type Bounds struct {
	rect  geom.Rect
	valid bool
}

// BoundsOf returns the bounding box of ring. An empty ring has invalid
// bounds that contain nothing.
func BoundsOf(ring []Point) Bounds {
	if len(ring) == 0 {
		return Bounds{}
	}
	first := coord(ring[0])
	r := geom.Rect{Min: first, Max: first}
	for _, p := range ring[1:] {
		r.ExpandToContainCoord(coord(p))
	}
	return Bounds{rect: r, valid: true}
}

// Valid reports whether the bounds were built from at least one point.
func (b Bounds) Valid() bool {
	return b.valid
}

// Min returns the south-west corner.
func (b Bounds) Min() Point {
	return Point{Lat: b.rect.Min.Y, Lon: b.rect.Min.X}
}

// Max returns the north-east corner.
func (b Bounds) Max() Point {
	return Point{Lat: b.rect.Max.Y, Lon: b.rect.Max.X}
}

// Contains reports whether pt lies within the box, edges included.
func (b Bounds) Contains(pt Point) bool {
	return b.valid && b.rect.ContainsCoord(coord(pt))
}

func coord(p Point) geom.Coord {
	return geom.Coord{X: p.Lon, Y: p.Lat}
}

// Polygon is a ring with its bounding box precomputed.
type Polygon struct {
	Ring   []Point
	Bounds Bounds
}

// NewPolygon wraps ring. The slice is not copied.
func NewPolygon(ring []Point) *Polygon {
	return &Polygon{Ring: ring, Bounds: BoundsOf(ring)}
}

// Contains reports whether pt is inside the polygon. Points outside the
// bounding box are rejected before ray casting; ray casting reports them
// as outside as well.
func (p *Polygon) Contains(pt Point) bool {
	if !p.Bounds.Contains(pt) {
		return false
	}
	return PointInPolygon(pt, p.Ring)
}

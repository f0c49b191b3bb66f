package domain

// Coordinate is one KML tuple. KML orders it lon,lat[,alt].
type Coordinate struct {
	Lon float64
	Lat float64
	Alt float64
}

// PointRecord is a placemark extracted from a folder of a KML tree.
// Point and line placemarks both land here; only the first coordinate
// takes part in matching.
type PointRecord struct {
	// Name is the placemark's display name (may be empty).
	Name string

	// Coordinates holds every tuple that parsed; malformed tuples are dropped.
	Coordinates []Coordinate

	// Fields holds ExtendedData SimpleData values keyed by their name attribute.
	Fields map[string]string

	// Source is an owned copy of the placemark taken at extraction time.
	// It never aliases the parsed input tree. The merge pipeline builds
	// output from the fields above and does not read it. May be nil.
	Source Snapshot
}

// Snapshot is an immutable copy of a source placemark. The kml package
// supplies the implementation.
type Snapshot interface {
	// XML serializes the placemark.
	XML() (string, error)
}

// HasPosition reports whether the record can take part in distance
// and containment tests.
func (r *PointRecord) HasPosition() bool {
	return len(r.Coordinates) > 0
}

// Position returns the first coordinate. Callers check HasPosition first.
func (r *PointRecord) Position() Coordinate {
	return r.Coordinates[0]
}

// Field returns the named extended-data value, or "" when absent.
func (r *PointRecord) Field(name string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// PolygonRecord is a polygon placemark's outer ring.
// The ring is not explicitly closed.
type PolygonRecord struct {
	Name        string
	Coordinates []Coordinate
}

package geo

import "math"

// IndexThreshold is the candidate count above which NewSearcher builds an
// Index instead of scanning linearly.
const IndexThreshold = 64

// DefaultCellMeters is the band height used when no radius is known.
const DefaultCellMeters = 100.0

// Searcher answers nearest-candidate queries. Nearest returns the position
// of the winning candidate in the slice the searcher was built from, its
// distance, and false when there are no candidates. Ties go to the
// candidate that comes first.
type Searcher interface {
	Nearest(pt Point) (int, float64, bool)
	Len() int
}

// NewSearcher returns a linear scan for small candidate sets and an Index
// for large ones. Both give identical answers.
func NewSearcher(points []Point, cellMeters float64) Searcher {
	if len(points) <= IndexThreshold {
		return Linear(points)
	}
	return NewIndex(points, cellMeters)
}

// Linear scans every candidate.
type Linear []Point

// Nearest returns the first candidate with the strictly smallest distance.
func (l Linear) Nearest(pt Point) (int, float64, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range l {
		d := Distance(pt, c)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, 0, false
	}
	return best, bestDist, true
}

// Len returns the number of candidates.
func (l Linear) Len() int {
	return len(l)
}

type indexEntry struct {
	order int
	pt    Point
}

// Index buckets candidates into latitude bands of fixed height. A query
// visits bands outward from its own and stops once the meridian distance
// to the next band exceeds the best distance found.
type Index struct {
	bandDeg float64
	bands   map[int][]indexEntry
	minBand int
	maxBand int
	size    int
}

// NewIndex builds an index over points. cellMeters sets the band height;
// values <= 0 use DefaultCellMeters.
func NewIndex(points []Point, cellMeters float64) *Index {
	if cellMeters <= 0 {
		cellMeters = DefaultCellMeters
	}
	ix := &Index{
		bandDeg: cellMeters / metersPerDegree,
		bands:   make(map[int][]indexEntry),
		minBand: math.MaxInt,
		maxBand: math.MinInt,
		size:    len(points),
	}
	for i, p := range points {
		b := ix.band(p.Lat)
		ix.bands[b] = append(ix.bands[b], indexEntry{order: i, pt: p})
		if b < ix.minBand {
			ix.minBand = b
		}
		if b > ix.maxBand {
			ix.maxBand = b
		}
	}
	return ix
}

// Len returns the number of candidates.
func (ix *Index) Len() int {
	return ix.size
}

func (ix *Index) band(lat float64) int {
	return int(math.Floor((lat + 90) / ix.bandDeg))
}

// bandEdgeGap returns the meridian distance in meters from lat to the
// nearest edge of band b.
func (ix *Index) bandEdgeGap(lat float64, b int) float64 {
	lo := float64(b)*ix.bandDeg - 90
	hi := lo + ix.bandDeg
	switch {
	case lat < lo:
		return (lo - lat) * metersPerDegree
	case lat > hi:
		return (lat - hi) * metersPerDegree
	default:
		return 0
	}
}

// Nearest returns the closest candidate. Equal distances resolve to the
// lowest insertion order, matching Linear.
func (ix *Index) Nearest(pt Point) (int, float64, bool) {
	if ix.size == 0 {
		return -1, 0, false
	}
	best := -1
	bestDist := math.Inf(1)

	visit := func(b int) {
		for _, e := range ix.bands[b] {
			d := Distance(pt, e.pt)
			if d < bestDist || (d == bestDist && e.order < best) {
				best, bestDist = e.order, d
			}
		}
	}

	home := min(max(ix.band(pt.Lat), ix.minBand), ix.maxBand)
	visit(home)
	for step := 1; ; step++ {
		below, above := home-step, home+step
		belowOpen := below >= ix.minBand && ix.pruneGap(pt.Lat, below) <= bestDist
		aboveOpen := above <= ix.maxBand && ix.pruneGap(pt.Lat, above) <= bestDist
		if !belowOpen && !aboveOpen {
			break
		}
		if belowOpen {
			visit(below)
		}
		if aboveOpen {
			visit(above)
		}
	}
	return best, bestDist, true
}

// pruneGap is the band edge gap less a small slack so rounding in the
// haversine formula never drops a tying candidate.
func (ix *Index) pruneGap(lat float64, b int) float64 {
	gap := ix.bandEdgeGap(lat, b)
	return gap - 1e-6 - 1e-9*gap
}

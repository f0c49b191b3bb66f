package conflation

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/geo"
)

// DefaultHookRadiusMeters is the inclusive hook linking distance.
const DefaultHookRadiusMeters = 50.0

// DefaultProgressEvery is how many homes pass between progress updates.
const DefaultProgressEvery = 100

// Options tune the engine.
type Options struct {
	HookRadiusMeters float64
	ProgressEvery    int
}

// DefaultOptions returns the standard options.
func DefaultOptions() Options {
	return Options{
		HookRadiusMeters: DefaultHookRadiusMeters,
		ProgressEvery:    DefaultProgressEvery,
	}
}

// Input is one conflation batch.
type Input struct {
	Alley      []domain.PointRecord
	Regular    []domain.PointRecord
	Hooks      []domain.PointRecord
	Boundaries []domain.PolygonRecord
}

// Result holds one enriched home per alley record, in input order.
type Result struct {
	Homes []*domain.EnrichedHome
	Stats Stats
}

// Stats counts what enrichment found.
type Stats struct {
	Inherited    int
	ZoneAssigned int
	HookLinked   int
	Business     int
	Residential  int
}

// Engine runs the enrichment pass. It holds no state between calls.
type Engine struct {
	opts Options
}

// New creates an engine. Zero option values fall back to the defaults.
func New(opts Options) *Engine {
	if opts.HookRadiusMeters <= 0 {
		opts.HookRadiusMeters = DefaultHookRadiusMeters
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	return &Engine{opts: opts}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// candidates is a searchable set of point records that have a position.
type candidates struct {
	records  []*domain.PointRecord
	searcher geo.Searcher
}

func newCandidates(in []domain.PointRecord, cellMeters float64) *candidates {
	c := &candidates{}
	points := make([]geo.Point, 0, len(in))
	for i := range in {
		if !in[i].HasPosition() {
			continue
		}
		c.records = append(c.records, &in[i])
		points = append(points, toPoint(in[i].Position()))
	}
	c.searcher = geo.NewSearcher(points, cellMeters)
	return c
}

func (c *candidates) nearest(pt geo.Point) (*domain.PointRecord, float64, bool) {
	idx, d, ok := c.searcher.Nearest(pt)
	if !ok {
		return nil, 0, false
	}
	return c.records[idx], d, true
}

func toPoint(c domain.Coordinate) geo.Point {
	return geo.Point{Lat: c.Lat, Lon: c.Lon}
}

type zone struct {
	name    string
	polygon *geo.Polygon
}

// Enrich enriches every alley home. progress receives percentages from 0
// to 100; pass nil to ignore progress.
func (e *Engine) Enrich(in Input, progress domain.ProgressFunc) *Result {
	if progress == nil {
		progress = domain.NopProgress
	}

	regular := newCandidates(in.Regular, geo.DefaultCellMeters)
	hooks := newCandidates(in.Hooks, e.opts.HookRadiusMeters)
	zones := make([]zone, 0, len(in.Boundaries))
	for _, b := range in.Boundaries {
		if len(b.Coordinates) == 0 {
			continue
		}
		ring := make([]geo.Point, len(b.Coordinates))
		for i, c := range b.Coordinates {
			ring[i] = toPoint(c)
		}
		zones = append(zones, zone{name: b.Name, polygon: geo.NewPolygon(ring)})
	}

	total := len(in.Alley)
	res := &Result{Homes: make([]*domain.EnrichedHome, 0, total)}
	progress(0, fmt.Sprintf("Processing %d small-alley home-passes", total))

	for i := range in.Alley {
		if i%e.opts.ProgressEvery == 0 {
			progress(float64(i)/float64(total)*100, fmt.Sprintf("Processing home-pass %d/%d", i+1, total))
		}
		home := e.enrichOne(&in.Alley[i], regular, hooks, zones, &res.Stats)
		res.Homes = append(res.Homes, home)
	}

	progress(100, fmt.Sprintf("Enriched %d home-passes", total))
	return res
}

func (e *Engine) enrichOne(src *domain.PointRecord, regular, hooks *candidates, zones []zone, stats *Stats) *domain.EnrichedHome {
	home := domain.NewEnrichedHome(src)
	defer func() {
		if home.Classification() == domain.ClassBusiness {
			stats.Business++
		} else {
			stats.Residential++
		}
	}()

	if !src.HasPosition() {
		return home
	}
	pt := toPoint(src.Position())

	if match, d, ok := regular.nearest(pt); ok {
		inherit(home, match)
		home.Match.RegularName = match.Name
		home.Match.RegularDistance = d
		stats.Inherited++
	}

	for _, z := range zones {
		if z.polygon.Contains(pt) {
			home.Fields[domain.FieldFATCode] = z.name
			home.Match.ZoneMatched = true
			stats.ZoneAssigned++
			break
		}
	}

	if hook, d, ok := hooks.nearest(pt); ok {
		home.Match.HookName = hook.Name
		home.Match.HookDistance = d
		if d <= e.opts.HookRadiusMeters {
			home.Fields[domain.FieldClampHookID] = hook.Name
			home.Fields[domain.FieldHouseComment] = domain.CommentNeedSurvey
			home.Match.HookLinked = true
			stats.HookLinked++
		}
	}

	return home
}

// inherit copies the address fields of the nearest regular home.
func inherit(home *domain.EnrichedHome, from *domain.PointRecord) {
	for _, name := range domain.InheritedFields {
		home.Fields[name] = from.Field(name)
	}
	home.Fields[domain.FieldClusterName] = ClusterName(from.Field(domain.FieldClusterName))
	if from.Field(domain.FieldCategoryBizPass) == domain.BizPassBusiness {
		home.Fields[domain.FieldCategoryBizPass] = domain.BizPassBusiness
	}
}

// ClusterName strips the "DESA " village prefix. When the upper-cased value
// contains it, the result is upper-cased with the first occurrence removed
// and surrounding space trimmed; otherwise the value is returned unchanged.
func ClusterName(v string) string {
	upper := strings.ToUpper(v)
	if !strings.Contains(upper, "DESA ") {
		return v
	}
	return strings.TrimSpace(strings.Replace(upper, "DESA ", "", 1))
}

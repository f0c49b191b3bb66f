package report

import (
	"strconv"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// leadColumns precede the HOME fields in every report row.
var leadColumns = []string{"Name", "Folder", "Longitude", "Latitude"}

// auditColumns follow the HOME fields.
var auditColumns = []string{
	"Nearest Regular",
	"Regular Distance (m)",
	"Nearest Hook",
	"Hook Distance (m)",
	"Hook Linked",
	"Zone Matched",
}

// Columns returns the header row shared by all report formats.
func Columns() []string {
	cols := make([]string, 0, len(leadColumns)+len(domain.HomeFields)+len(auditColumns))
	cols = append(cols, leadColumns...)
	cols = append(cols, domain.HomeFields...)
	cols = append(cols, auditColumns...)
	return cols
}

// homeRow converts one enriched home to a row of strings matching Columns.
func homeRow(h *domain.EnrichedHome) []string {
	row := make([]string, 0, len(leadColumns)+len(domain.HomeFields)+len(auditColumns))

	lon, lat := "", ""
	if h.HasPosition() {
		p := h.Position()
		lon = formatFloat(p.Lon)
		lat = formatFloat(p.Lat)
	}
	row = append(row, h.Name, h.Classification().String(), lon, lat)
	row = append(row, h.Values()...)
	row = append(row,
		h.Match.RegularName,
		formatDistance(h.Match.RegularDistance),
		h.Match.HookName,
		formatDistance(h.Match.HookDistance),
		formatBool(h.Match.HookLinked),
		formatBool(h.Match.ZoneMatched),
	)
	return row
}

// statsRows flattens run statistics into label/value pairs.
func statsRows(stats domain.MergeStats) [][2]any {
	return [][2]any{
		{"Small-alley home-passes", stats.AlleyHomes},
		{"Regular home-passes", stats.RegularHomes},
		{"Hooks", stats.Hooks},
		{"FAT boundaries", stats.Boundaries},
		{"Inherited attributes", stats.Inherited},
		{"Zone assigned", stats.ZoneAssigned},
		{"Hook linked", stats.HookLinked},
		{"Business", stats.Business},
		{"Residential", stats.Residential},
		{"Copied elements", stats.CopiedElements},
		{"Skipped copy paths", stats.SkippedCopyPaths},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDistance renders meters with centimetre precision; negative means no candidate.
func formatDistance(d float64) string {
	if d < 0 {
		return ""
	}
	return strconv.FormatFloat(d, 'f', 2, 64)
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

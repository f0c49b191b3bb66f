package driven

import (
	"context"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// ReportWriter writes the enrichment audit report for a run.
type ReportWriter interface {
	// Format returns the report format this writer produces.
	Format() domain.ReportFormat

	// Write writes one row per enriched home to path.
	Write(ctx context.Context, path string, homes []*domain.EnrichedHome, stats domain.MergeStats) error
}

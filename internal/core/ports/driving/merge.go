package driving

import (
	"context"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// MergeService conflates a small-alley KMZ into a regular KMZ.
type MergeService interface {
	// Merge runs one conflation and writes <AreaID>_Processed.kmz.
	// Progress notifications are delivered synchronously and in order.
	// Returns a *domain.ValidationError for bad input before any work starts.
	Merge(ctx context.Context, req domain.MergeRequest, progress domain.ProgressFunc) (*domain.MergeResult, error)
}

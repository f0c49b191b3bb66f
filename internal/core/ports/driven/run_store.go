package driven

import (
	"context"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// RunStore persists the merge history.
type RunStore interface {
	// SaveRun persists a run's state.
	// Creates or updates the run based on ID.
	SaveRun(ctx context.Context, run *domain.Run) error

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns recent runs ordered by start time descending.
	// A limit <= 0 returns all runs.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// PruneRuns removes the oldest runs beyond the retention limit.
	PruneRuns(ctx context.Context, keep int) error
}

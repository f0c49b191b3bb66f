package driving

import (
	"context"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// RunHistory exposes recorded merge runs.
type RunHistory interface {
	// List returns up to limit runs, newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Get returns a run by ID, or by a unique ID prefix.
	// Returns domain.ErrNotFound if nothing matches.
	Get(ctx context.Context, id string) (*domain.Run, error)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.Run
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.Run),
	}
}

// SaveRun stores or updates a run.
func (s *RunStore) SaveRun(_ context.Context, run *domain.Run) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns runs newest first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(limit), nil
}

// sorted returns runs newest first (caller must hold lock).
func (s *RunStore) sorted(limit int) []domain.Run {
	out := make([]domain.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PruneRuns keeps only the newest keep runs.
func (s *RunStore) PruneRuns(_ context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.sorted(0)
	for _, r := range all[min(keep, len(all)):] {
		delete(s.runs, r.ID)
	}
	return nil
}

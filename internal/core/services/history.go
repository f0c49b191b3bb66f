package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
)

// Ensure RunHistoryService implements the interface.
var _ driving.RunHistory = (*RunHistoryService)(nil)

// RunHistoryService reads the merge run ledger.
type RunHistoryService struct {
	store driven.RunStore
}

// NewRunHistoryService creates a run history service.
func NewRunHistoryService(store driven.RunStore) *RunHistoryService {
	return &RunHistoryService{store: store}
}

// List returns up to limit runs, newest first.
func (s *RunHistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	return s.store.ListRuns(ctx, limit)
}

// Get returns a run by full ID, falling back to a unique ID prefix.
func (s *RunHistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "run ID is required")
	}

	run, err := s.store.GetRun(ctx, id)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	runs, err := s.store.ListRuns(ctx, 0)
	if err != nil {
		return nil, err
	}
	var match *domain.Run
	for i := range runs {
		if !strings.HasPrefix(runs[i].ID, id) {
			continue
		}
		if match != nil {
			return nil, domain.NewValidationError("id", "prefix "+id+" matches more than one run")
		}
		match = &runs[i]
	}
	if match == nil {
		return nil, domain.ErrNotFound
	}
	return match, nil
}

package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// mockMergeService implements driving.MergeService for testing.
type mockMergeService struct {
	req    domain.MergeRequest
	result *domain.MergeResult
	err    error
}

func (m *mockMergeService) Merge(
	_ context.Context, req domain.MergeRequest, progress domain.ProgressFunc,
) (*domain.MergeResult, error) {
	m.req = req
	progress(10, "Reading KMZ archives")
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.MergeResult{}, nil
}

// mockRunHistory implements driving.RunHistory for testing.
type mockRunHistory struct {
	runs  []domain.Run
	err   error
	limit int
}

func (m *mockRunHistory) List(_ context.Context, limit int) ([]domain.Run, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.runs, nil
}

func (m *mockRunHistory) Get(_ context.Context, id string) (*domain.Run, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if strings.HasPrefix(m.runs[i].ID, id) {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func sampleRuns() []domain.Run {
	start := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	return []domain.Run{{
		ID:         "a1b2c3d4-0000-4000-8000-000000000001",
		AreaID:     "JKT01",
		Status:     domain.RunSucceeded,
		OutputPath: "/out/JKT01_Processed.kmz",
		StartedAt:  start,
		EndedAt:    start.Add(1500 * time.Millisecond),
		Stats:      domain.MergeStats{AlleyHomes: 4, Inherited: 3},
	}}
}

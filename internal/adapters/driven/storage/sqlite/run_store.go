package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

const runColumns = `id, area_id, regular_path, alley_path, output_path, status, error, started_at, ended_at, stats`

// SaveRun persists a run's state.
// Creates or updates the run based on ID.
func (s *runStore) SaveRun(ctx context.Context, run *domain.Run) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("marshaling run stats: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			area_id = excluded.area_id,
			regular_path = excluded.regular_path,
			alley_path = excluded.alley_path,
			output_path = excluded.output_path,
			status = excluded.status,
			error = excluded.error,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			stats = excluded.stats
	`, run.ID, run.AreaID, run.RegularPath, run.AlleyPath,
		nullString(run.OutputPath), string(run.Status), nullString(run.Error),
		formatTime(run.StartedAt), formatNullableTime(run.EndedAt), string(stats))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns runs ordered by start time descending.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// PruneRuns removes runs beyond the newest keep.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs
		WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var outputPath, errMsg, endedAt sql.NullString
	var status, startedAt, stats string

	if err := row.Scan(&run.ID, &run.AreaID, &run.RegularPath, &run.AlleyPath,
		&outputPath, &status, &errMsg, &startedAt, &endedAt, &stats); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Status = domain.RunStatus(status)
	run.OutputPath = outputPath.String
	run.Error = errMsg.String
	run.StartedAt = parseTime(startedAt)
	run.EndedAt = parseNullableTime(endedAt)
	if stats != "" {
		if err := json.Unmarshal([]byte(stats), &run.Stats); err != nil {
			return nil, fmt.Errorf("unmarshaling run stats: %w", err)
		}
	}
	return &run, nil
}

// formatTime formats a time as UTC RFC3339 with nanoseconds so that string
// order matches time order.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

// formatNullableTime formats a time, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseNullableTime parses a nullable timestamp.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	return parseTime(s.String)
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

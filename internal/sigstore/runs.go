package sigstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run describes one scan invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in progress or was interrupted
	Roots      []string
	Files      int
	Failures   int
}

// Finished reports whether the run completed.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// BeginRun records the start of a scan over roots.
func (s *Store) BeginRun(ctx context.Context, roots []string) (*Run, error) {
	rootsJSON, err := json.Marshal(roots)
	if err != nil {
		return nil, fmt.Errorf("marshal roots: %w", err)
	}
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: timeNow().UTC(),
		Roots:     append([]string(nil), roots...),
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, roots_json) VALUES (?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		string(rootsJSON),
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the completion time and totals for runID.
func (s *Store) FinishRun(ctx context.Context, runID string, files, failures int) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, files = ?, failures = ? WHERE id = ?`,
		formatTime(timeNow()),
		files,
		failures,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, roots_json, files, failures FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches a run by identifier. A missing run yields ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, started_at, finished_at, roots_json, files, failures FROM runs WHERE id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run       Run
		started   sql.NullString
		finished  sql.NullString
		rootsJSON string
	)
	if err := scanner.Scan(&run.ID, &started, &finished, &rootsJSON, &run.Files, &run.Failures); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	if err := json.Unmarshal([]byte(rootsJSON), &run.Roots); err != nil {
		return Run{}, fmt.Errorf("decode roots: %w", err)
	}
	return run, nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/addoncheck/internal/harness"
)

// Run is one recorded harness run.
type Run struct {
	Seq        int64     `json:"seq"`
	RunID      string    `json:"run_id"`
	Module     string    `json:"module"`
	Status     string    `json:"status"`
	ExitCode   int       `json:"exit_code"`
	RecordedAt time.Time `json:"recorded_at"`
	Report     string    `json:"report"` // canonical JSON
}

// RecordRun stores report with the given timestamp.
// Uses ON CONFLICT(run_id) DO NOTHING - a run id is only ever recorded once.
func (s *Store) RecordRun(ctx context.Context, report *harness.Report, at time.Time) error {
	reportJSON, err := report.CanonicalJSON()
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, module, status, exit_code, recorded_at, report)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO NOTHING
	`,
		report.RunID,
		report.Module,
		string(report.Status),
		report.ExitCode,
		at.UTC().Format(time.RFC3339Nano),
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means no limit.
// Returns an empty slice (not nil) when nothing has been recorded.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, run_id, module, status, exit_code, recorded_at, report
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var recordedAt string
		if err := rows.Scan(&run.Seq, &run.RunID, &run.Module, &run.Status, &run.ExitCode, &recordedAt, &run.Report); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at for run %s: %w", run.RunID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	var run Run
	var recordedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, run_id, module, status, exit_code, recorded_at, report
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&run.Seq, &run.RunID, &run.Module, &run.Status, &run.ExitCode, &recordedAt, &run.Report)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	run.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse recorded_at for run %s: %w", runID, err)
	}
	return run, nil
}

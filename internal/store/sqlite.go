package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/tymonx/cocotb/internal/regression"
)

// SQLiteStore is the SQLite-backed results database.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check: SQLiteStore must implement Store.
var _ Store = (*SQLiteStore)(nil)

// Open creates a SQLiteStore at the given path.
// It initializes the database with WAL mode, applies pragmas, and runs
// migrations. The parent directory is created if missing.
func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSummary persists a run summary and its per-test results in one
// transaction. A summary without a RunID is assigned a fresh ULID.
func (s *SQLiteStore) SaveSummary(ctx context.Context, sum *regression.Summary) error {
	if sum == nil {
		return ErrEmptySummary
	}
	if sum.RunID == "" {
		sum.RunID = ulid.Make().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO regression_runs (id, manager, started_at, finished_at, passed, failed, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sum.RunID, sum.Manager,
		sum.StartedAt.UTC().Format(time.RFC3339Nano),
		sum.FinishedAt.UTC().Format(time.RFC3339Nano),
		sum.Passed, sum.Failed, sum.Skipped)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, r := range sum.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO test_results (run_id, test_name, module, outcome, error, started_at, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, sum.RunID, r.Test, r.Module, string(r.Outcome), r.Error,
			r.StartedAt.UTC().Format(time.RFC3339Nano),
			r.Duration.Milliseconds())
		if err != nil {
			return fmt.Errorf("insert result %q: %w", r.Test, err)
		}
	}

	return tx.Commit()
}

// GetRun returns a run with its per-test results.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, manager, started_at, finished_at, passed, failed, skipped
		FROM regression_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %q: %w", id, ErrRunNotFound)
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT test_name, module, outcome, error, started_at, duration_ms
		FROM test_results WHERE run_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r TestResult
		var startedAt string
		if err := rows.Scan(&r.Test, &r.Module, &r.Outcome, &r.Error, &startedAt, &r.DurationMS); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse result timestamp: %w", err)
		}
		run.Results = append(run.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first.
// A non-positive limit defaults to 50.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, manager, started_at, finished_at, passed, failed, skipped
		FROM regression_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Stats returns aggregate store statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM regression_runs").Scan(&stats.RunCount)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	var last sql.NullString
	err = s.db.QueryRowContext(ctx, "SELECT MAX(finished_at) FROM regression_runs").Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	if last.Valid {
		t, err := time.Parse(time.RFC3339Nano, last.String)
		if err != nil {
			return nil, fmt.Errorf("parse last run timestamp: %w", err)
		}
		stats.LastRunAt = &t
	}

	return stats, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var startedAt, finishedAt string
	err := sc.Scan(&run.ID, &run.Manager, &startedAt, &finishedAt,
		&run.Passed, &run.Failed, &run.Skipped)
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse run started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return nil, fmt.Errorf("parse run finished_at: %w", err)
	}
	return &run, nil
}

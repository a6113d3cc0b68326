// Package store persists regression run summaries in SQLite.
package store

import (
	"context"
	"time"

	"github.com/tymonx/cocotb/internal/regression"
)

// Run is a persisted regression run. Results is populated by GetRun only.
type Run struct {
	ID         string       `json:"id"`
	Manager    string       `json:"manager"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Skipped    int          `json:"skipped"`
	Results    []TestResult `json:"results,omitempty"`
}

// TestResult is a persisted per-test outcome.
type TestResult struct {
	Test       string    `json:"test"`
	Module     string    `json:"module,omitempty"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// Stats holds aggregate store statistics for health reporting.
type Stats struct {
	RunCount  int        `json:"run_count"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
}

// Store is the persistence interface the report API consumes.
type Store interface {
	SaveSummary(ctx context.Context, s *regression.Summary) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// Package regression implements the regression manager: the component
// that schedules registered tests, collects their results, and produces
// a run summary. The manager implementation is pluggable; Create resolves
// a named plugin into a Manager, falling back to the built-in default.
package regression

import (
	"context"
	"time"
)

// Outcome classifies a single test result.
type Outcome string

const (
	// OutcomePass is a test that completed without error.
	OutcomePass Outcome = "pass"

	// OutcomeFail is a test that returned an error or panicked.
	OutcomeFail Outcome = "fail"

	// OutcomeSkip is a test that was registered but not executed.
	OutcomeSkip Outcome = "skip"

	// OutcomeXFail is an expected-failure test that failed. Counted as passed.
	OutcomeXFail Outcome = "xfail"

	// OutcomeXPass is an expected-failure test that passed. Counted as failed.
	OutcomeXPass Outcome = "xpass"
)

// Test is a single registered regression test.
type Test struct {
	// Name uniquely identifies the test within a run.
	Name string

	// Module is the testbench module the test belongs to. Informational.
	Module string

	// Timeout bounds the test's execution. Zero means no bound beyond
	// the run context.
	Timeout time.Duration

	// Skip marks the test as registered but not executed.
	Skip bool

	// ExpectFail inverts the pass/fail classification: an error becomes
	// xfail (counted as passed), success becomes xpass (counted as failed).
	ExpectFail bool

	// Run executes the test. Required unless Skip is set.
	Run func(ctx context.Context) error
}

// Result is the recorded outcome of one test.
type Result struct {
	Test      string        `json:"test"`
	Module    string        `json:"module,omitempty"`
	Outcome   Outcome       `json:"outcome"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Summary aggregates the results of one regression run.
type Summary struct {
	RunID      string    `json:"run_id"`
	Manager    string    `json:"manager"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    []Result  `json:"results"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
}

// Manager is the contract every regression manager must satisfy.
// Plugin-produced managers are validated against this interface by Create.
type Manager interface {
	// Name identifies the manager implementation (e.g. "default").
	Name() string

	// Register adds a test to the schedule. Duplicate names are rejected.
	Register(t Test) error

	// Run executes all registered tests and returns the run summary.
	Run(ctx context.Context) (*Summary, error)
}

// Recorder observes results as a run progresses. Implementations must be
// safe for reuse across runs.
type Recorder interface {
	ObserveResult(r Result)
	ObserveRun(s *Summary)
}

// Factory is a zero-argument callable producing a candidate Manager.
// Plugins return one from their registration attribute.
type Factory func() any

// RegisterFunc is the type of the well-known registration attribute a
// plugin module exposes. Calling it yields the plugin's Factory.
type RegisterFunc func() any

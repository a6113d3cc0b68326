package regression

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultManager is the built-in regression manager: a sequential
// scheduler with per-test timeouts and panic containment.
type DefaultManager struct {
	log   *slog.Logger
	rec   Recorder
	tests []Test
	names map[string]struct{}
}

// Compile-time check: DefaultManager must implement Manager.
var _ Manager = (*DefaultManager)(nil)

// Option configures a DefaultManager.
type Option func(*DefaultManager)

// WithLogger sets the logger used for per-test progress output.
func WithLogger(log *slog.Logger) Option {
	return func(m *DefaultManager) {
		m.log = log
	}
}

// WithRecorder sets the recorder notified of results and run summaries.
func WithRecorder(rec Recorder) Option {
	return func(m *DefaultManager) {
		m.rec = rec
	}
}

// New creates the default regression manager.
func New(opts ...Option) *DefaultManager {
	m := &DefaultManager{
		log:   slog.Default(),
		names: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns "default".
func (m *DefaultManager) Name() string {
	return "default"
}

// Register adds a test to the schedule in registration order.
func (m *DefaultManager) Register(t Test) error {
	if t.Name == "" {
		return fmt.Errorf("test name required: %w", ErrInvalidTest)
	}
	if t.Run == nil && !t.Skip {
		return fmt.Errorf("test %q has no run function: %w", t.Name, ErrInvalidTest)
	}
	if _, exists := m.names[t.Name]; exists {
		return fmt.Errorf("test %q: %w", t.Name, ErrDuplicateTest)
	}
	m.names[t.Name] = struct{}{}
	m.tests = append(m.tests, t)
	return nil
}

// Run executes all registered tests sequentially and returns the summary.
// A cancelled context stops the run after the in-flight test; the partial
// summary is returned alongside the context error.
func (m *DefaultManager) Run(ctx context.Context) (*Summary, error) {
	s := &Summary{
		RunID:     ulid.Make().String(),
		Manager:   m.Name(),
		StartedAt: time.Now().UTC(),
	}
	m.log.Info("regression started", "run_id", s.RunID, "tests", len(m.tests))

	for _, t := range m.tests {
		if err := ctx.Err(); err != nil {
			s.FinishedAt = time.Now().UTC()
			return s, err
		}
		r := m.runOne(ctx, t)
		s.Results = append(s.Results, r)

		switch r.Outcome {
		case OutcomePass, OutcomeXFail:
			s.Passed++
		case OutcomeFail, OutcomeXPass:
			s.Failed++
		case OutcomeSkip:
			s.Skipped++
		}
		if m.rec != nil {
			m.rec.ObserveResult(r)
		}
	}

	s.FinishedAt = time.Now().UTC()
	if m.rec != nil {
		m.rec.ObserveRun(s)
	}
	m.log.Info("regression finished",
		"run_id", s.RunID,
		"passed", s.Passed,
		"failed", s.Failed,
		"skipped", s.Skipped,
		"duration_ms", s.FinishedAt.Sub(s.StartedAt).Milliseconds(),
	)
	return s, nil
}

// runOne executes a single test and classifies its outcome.
func (m *DefaultManager) runOne(ctx context.Context, t Test) Result {
	r := Result{
		Test:      t.Name,
		Module:    t.Module,
		StartedAt: time.Now().UTC(),
	}

	if t.Skip {
		r.Outcome = OutcomeSkip
		m.log.Info("test skipped", "test", t.Name)
		return r
	}

	err := m.execute(ctx, t)
	r.Duration = time.Since(r.StartedAt)

	switch {
	case err == nil && t.ExpectFail:
		r.Outcome = OutcomeXPass
		r.Error = "test passed but was expected to fail"
	case err == nil:
		r.Outcome = OutcomePass
	case t.ExpectFail:
		r.Outcome = OutcomeXFail
		r.Error = err.Error()
	default:
		r.Outcome = OutcomeFail
		r.Error = err.Error()
	}

	m.log.Info("test finished",
		"test", t.Name,
		"outcome", string(r.Outcome),
		"duration_ms", r.Duration.Milliseconds(),
	)
	return r
}

// execute runs the test body with timeout and panic containment.
// A panicking test fails; the run continues with the next test.
func (m *DefaultManager) execute(ctx context.Context, t Test) error {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				done <- fmt.Errorf("test panicked: %v", v)
			}
		}()
		done <- t.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

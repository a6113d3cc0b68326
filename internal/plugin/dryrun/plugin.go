// Package dryrun provides the built-in "dry-run" regression manager
// plugin: it schedules nothing and reports every registered test as
// skipped. Useful for checking what a regression would run.
//
// The package registers itself through the same extension-point
// machinery external plugins use, so resolving "dry-run" exercises the
// full named path.
package dryrun

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tymonx/cocotb/internal/plugin"
	"github.com/tymonx/cocotb/internal/regression"
)

// ModuleRef is the module reference the dry-run entry points at.
const ModuleRef = "cocotb_dryrun_plugin"

// Manager reports every registered test as skipped without executing it.
type Manager struct {
	tests []regression.Test
	names map[string]struct{}
}

// Compile-time check: Manager must implement regression.Manager.
var _ regression.Manager = (*Manager)(nil)

// New creates a dry-run manager.
func New() *Manager {
	return &Manager{names: make(map[string]struct{})}
}

// Name returns "dry-run".
func (m *Manager) Name() string {
	return "dry-run"
}

// Register adds a test to the schedule without validating its body;
// a dry run never executes it.
func (m *Manager) Register(t regression.Test) error {
	if t.Name == "" {
		return fmt.Errorf("test name required: %w", regression.ErrInvalidTest)
	}
	if _, exists := m.names[t.Name]; exists {
		return fmt.Errorf("test %q: %w", t.Name, regression.ErrDuplicateTest)
	}
	m.names[t.Name] = struct{}{}
	m.tests = append(m.tests, t)
	return nil
}

// Run marks every test skipped and returns the summary.
func (m *Manager) Run(ctx context.Context) (*regression.Summary, error) {
	now := time.Now().UTC()
	s := &regression.Summary{
		RunID:     ulid.Make().String(),
		Manager:   m.Name(),
		StartedAt: now,
	}

	for _, t := range m.tests {
		if err := ctx.Err(); err != nil {
			s.FinishedAt = time.Now().UTC()
			return s, err
		}
		s.Results = append(s.Results, regression.Result{
			Test:      t.Name,
			Module:    t.Module,
			Outcome:   regression.OutcomeSkip,
			StartedAt: now,
		})
		s.Skipped++
	}

	s.FinishedAt = time.Now().UTC()
	return s, nil
}

// Register adds the dry-run plugin to the process-wide registry.
// Called once from CLI startup.
func Register() {
	plugin.Register(plugin.Entry{
		Group:  regression.PluginGroup,
		Name:   "dry-run",
		Module: ModuleRef,
	})
	plugin.RegisterModule(ModuleRef, plugin.AttrMap{
		regression.RegisterAttr: regression.RegisterFunc(func() any {
			return regression.Factory(func() any { return New() })
		}),
	})
}

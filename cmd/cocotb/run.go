package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tymonx/cocotb/internal/config"
	"github.com/tymonx/cocotb/internal/metrics"
	"github.com/tymonx/cocotb/internal/regression"
	"github.com/tymonx/cocotb/internal/store"
)

var runManagerFlag string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the registered regression tests",
	RunE:  runRegression,
}

func init() {
	runCmd.Flags().StringVar(&runManagerFlag, "manager", "",
		"regression manager plugin name (overrides COCOTB_REGRESSION_MANAGER)")
}

func runRegression(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Flag beats config; the environment variable is applied inside
	// Create when both are empty.
	name := runManagerFlag
	if name == "" {
		name = cfg.Regression.Manager
	}

	rec := metrics.NewRecorder()
	mgr, err := regression.Create(name,
		regression.WithLogger(logger),
		regression.WithRecorder(rec),
	)
	if err != nil {
		return err
	}
	slog.Info("regression manager resolved", "manager", mgr.Name())

	for _, t := range regression.RegisteredTests() {
		if t.Timeout == 0 {
			t.Timeout = time.Duration(cfg.Regression.TestTimeout)
		}
		if err := mgr.Register(t); err != nil {
			return err
		}
	}

	summary, err := mgr.Run(ctx)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Results.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveSummary(ctx, summary); err != nil {
		return err
	}
	slog.Info("results saved", "run_id", summary.RunID, "path", cfg.Results.Path)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d tests failed", summary.Failed, len(summary.Results))
	}
	return nil
}

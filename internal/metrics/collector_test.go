package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tymonx/cocotb/internal/regression"
	"github.com/tymonx/cocotb/internal/store"
)

// statsStore implements store.Store returning canned statistics.
type statsStore struct {
	stats    *store.Stats
	statsErr error
}

var _ store.Store = (*statsStore)(nil)

func (s *statsStore) SaveSummary(context.Context, *regression.Summary) error { return nil }
func (s *statsStore) GetRun(context.Context, string) (*store.Run, error) {
	return nil, store.ErrRunNotFound
}
func (s *statsStore) ListRuns(context.Context, int) ([]store.Run, error) { return nil, nil }
func (s *statsStore) Close() error                                       { return nil }

func (s *statsStore) Stats(context.Context) (*store.Stats, error) {
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	return s.stats, nil
}

func TestStoreHandler(t *testing.T) {
	last := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	handler := NewStoreHandler(&statsStore{stats: &store.Stats{RunCount: 7, LastRunAt: &last}})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "cocotb_recorded_runs 7") {
		t.Errorf("metrics output missing run count gauge:\n%s", body)
	}
	if !strings.Contains(body, "cocotb_last_run_timestamp_seconds") {
		t.Errorf("metrics output missing last run gauge:\n%s", body)
	}
}

func TestStoreHandler_NoRuns(t *testing.T) {
	handler := NewStoreHandler(&statsStore{stats: &store.Stats{}})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "cocotb_recorded_runs 0") {
		t.Errorf("metrics output missing zero run count:\n%s", body)
	}
	if strings.Contains(body, "cocotb_last_run_timestamp_seconds ") {
		t.Errorf("metrics output has last run gauge without runs:\n%s", body)
	}
}

func TestStoreHandler_StatsError(t *testing.T) {
	handler := NewStoreHandler(&statsStore{statsErr: errors.New("db closed")})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// A failing store yields an empty scrape, not a handler error.
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "cocotb_recorded_runs") {
		t.Errorf("metrics output contains gauges despite stats error:\n%s", rec.Body.String())
	}
}

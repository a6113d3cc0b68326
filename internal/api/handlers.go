// Package api serves regression results over HTTP for local report browsing.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tymonx/cocotb/internal/store"
)

// Handler implements the API handlers
type Handler struct {
	store   store.Store
	version string
}

// NewHandler creates a new Handler over the results store.
func NewHandler(s store.Store, version string) *Handler {
	return &Handler{
		store:   s,
		version: version,
	}
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status    string     `json:"status"`
	Version   string     `json:"version"`
	RunCount  int        `json:"run_count"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		slog.Error("stats query failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "stats query failed")
		return
	}

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		RunCount:  stats.RunCount,
		LastRunAt: stats.LastRunAt,
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListRunsResponse is the body of GET /api/v1/runs.
type ListRunsResponse struct {
	Runs []store.Run `json:"runs"`
}

// ListRuns handles GET /api/v1/runs?limit=N
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		slog.Error("list runs failed", "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "list runs failed")
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}

	writeJSON(w, http.StatusOK, ListRunsResponse{Runs: runs})
}

// GetRun handles GET /api/v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			WriteProblem(w, r, http.StatusNotFound, fmt.Sprintf("run %q not found", id))
			return
		}
		slog.Error("get run failed", "run_id", id, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "get run failed")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

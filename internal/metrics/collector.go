package metrics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tymonx/cocotb/internal/store"
)

var (
	runCountDesc = prometheus.NewDesc(
		"cocotb_recorded_runs",
		"Number of regression runs in the results store.",
		nil, nil,
	)
	lastRunDesc = prometheus.NewDesc(
		"cocotb_last_run_timestamp_seconds",
		"Unix time the most recent regression run finished.",
		nil, nil,
	)
)

// StoreCollector exposes results-store statistics as gauges computed at
// scrape time.
type StoreCollector struct {
	store store.Store
}

// Compile-time check: StoreCollector must implement prometheus.Collector.
var _ prometheus.Collector = (*StoreCollector)(nil)

// NewStoreCollector creates a collector over the results store.
func NewStoreCollector(s store.Store) *StoreCollector {
	return &StoreCollector{store: s}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- runCountDesc
	ch <- lastRunDesc
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Stats(context.Background())
	if err != nil {
		slog.Error("stats collection failed", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(runCountDesc, prometheus.GaugeValue, float64(stats.RunCount))
	if stats.LastRunAt != nil {
		ch <- prometheus.MustNewConstMetric(lastRunDesc, prometheus.GaugeValue, float64(stats.LastRunAt.Unix()))
	}
}

// NewStoreHandler returns an HTTP handler serving store statistics in
// Prometheus exposition format.
func NewStoreHandler(s store.Store) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewStoreCollector(s))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

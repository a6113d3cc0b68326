// Package metrics exposes regression run counters on a Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tymonx/cocotb/internal/regression"
)

// Recorder implements regression.Recorder on Prometheus collectors.
type Recorder struct {
	registry *prometheus.Registry

	testsTotal   *prometheus.CounterVec
	runsTotal    prometheus.Counter
	testDuration prometheus.Histogram
}

// Compile-time check: Recorder must implement regression.Recorder.
var _ regression.Recorder = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		testsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cocotb",
			Name:      "tests_total",
			Help:      "Number of finished tests by outcome.",
		}, []string{"outcome"}),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cocotb",
			Name:      "regression_runs_total",
			Help:      "Number of completed regression runs.",
		}),
		testDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cocotb",
			Name:      "test_duration_seconds",
			Help:      "Wall-clock duration of individual tests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	r.registry.MustRegister(r.testsTotal, r.runsTotal, r.testDuration)
	return r
}

// ObserveResult implements regression.Recorder.
func (r *Recorder) ObserveResult(res regression.Result) {
	r.testsTotal.WithLabelValues(string(res.Outcome)).Inc()
	if res.Outcome != regression.OutcomeSkip {
		r.testDuration.Observe(res.Duration.Seconds())
	}
}

// ObserveRun implements regression.Recorder.
func (r *Recorder) ObserveRun(*regression.Summary) {
	r.runsTotal.Inc()
}

// Handler returns the HTTP handler serving this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

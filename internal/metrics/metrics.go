// Package metrics provides Prometheus metrics for observability.
// Metrics are organized by domain: HTTP requests, engine commands, and seed loading.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "admin_console"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Engine metrics - track record-set commands
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "commands_total",
			Help:      "Total number of engine commands by command name and outcome",
		},
		[]string{"command", "status"},
	)

	RecordCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "records",
			Help:      "Number of records currently held in the canonical set",
		},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "searches_total",
			Help:      "Total number of searches by result (hit or miss)",
		},
		[]string{"result"},
	)

	// Seed metrics - track the one-shot load from the external source
	SeedLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "loads_total",
			Help:      "Total number of seed load attempts by result",
		},
		[]string{"result"},
	)

	SeedLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "load_duration_seconds",
			Help:      "Seed load duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	SeedRecordsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "records_skipped_total",
			Help:      "Total number of seed entries rejected by validation",
		},
	)
)

// ObserveCommand records the outcome of one engine command.
func ObserveCommand(command, status string) {
	CommandsTotal.WithLabelValues(command, status).Inc()
}

// SetRecordCount updates the canonical-set size gauge.
func SetRecordCount(n int) {
	RecordCount.Set(float64(n))
}

// ObserveSearch records a search outcome: "hit" when the filter matched at
// least one record, "miss" when it matched none.
func ObserveSearch(result string) {
	SearchesTotal.WithLabelValues(result).Inc()
}

// ObserveSeedLoad records a completed seed load attempt.
func ObserveSeedLoad(result string, duration time.Duration, skipped int) {
	SeedLoadsTotal.WithLabelValues(result).Inc()
	SeedLoadDuration.Observe(duration.Seconds())
	if skipped > 0 {
		SeedRecordsSkipped.Add(float64(skipped))
	}
}

// Timer is a helper for measuring operation duration.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer was created.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

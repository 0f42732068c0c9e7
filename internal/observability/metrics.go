package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobpilot_generation_requests_total",
			Help: "Total number of generation calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobpilot_generation_duration_seconds",
			Help:    "Duration of generation calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"operation"},
	)

	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobpilot_store_writes_total",
			Help: "Total number of collection writes by key and outcome",
		},
		[]string{"key", "outcome"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// ObserveGeneration records one generation call.
func ObserveGeneration(operation string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	GenerationRequests.WithLabelValues(operation, outcome).Inc()
	GenerationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveStoreWrite records one collection write.
func ObserveStoreWrite(key string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	StoreWrites.WithLabelValues(key, outcome).Inc()
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	propagationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitgo_propagations_total",
			Help: "Total number of satellite propagations.",
		},
	)

	propagationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitgo_propagation_failures_total",
			Help: "Total number of failed propagations by failure kind.",
		},
		[]string{"kind"},
	)

	batchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitgo_batches_total",
			Help: "Total number of batch propagation runs.",
		},
	)

	batchDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbitgo_batch_duration_seconds",
			Help:    "Batch propagation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	workersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orbitgo_workers_active",
			Help: "Number of propagation workers currently running.",
		},
	)
)

func init() {
	prometheus.MustRegister(propagationsTotal)
	prometheus.MustRegister(propagationFailuresTotal)
	prometheus.MustRegister(batchesTotal)
	prometheus.MustRegister(batchDurationSeconds)
	prometheus.MustRegister(workersActive)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordBatch records one batch run with its duration and outcome counts.
func RecordBatch(duration time.Duration, succeeded, failed int) {
	batchesTotal.Inc()
	batchDurationSeconds.Observe(duration.Seconds())
	propagationsTotal.Add(float64(succeeded + failed))
}

// RecordFailure counts one failed propagation by failure kind.
func RecordFailure(kind string) {
	propagationFailuresTotal.WithLabelValues(kind).Inc()
}

// WorkerStarted increments the active worker gauge.
func WorkerStarted() {
	workersActive.Inc()
}

// WorkerStopped decrements the active worker gauge.
func WorkerStopped() {
	workersActive.Dec()
}

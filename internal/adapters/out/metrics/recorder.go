// Package metrics exposes the service's Prometheus collectors. Recorder is
// handed to the unit of work, the transaction retrier, the retention job
// and the HTTP listener, each of which reports through its own observer
// interface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"luggage/internal/adapters/out/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "luggage"

// Recorder owns a private registry so tests and multiple instances never
// collide on the global one.
type Recorder struct {
	registry *prometheus.Registry

	aggregateWrites  *prometheus.CounterVec
	txRetries        *prometheus.CounterVec
	txExhausted      *prometheus.CounterVec
	retentionRuns    *prometheus.CounterVec
	retentionPurged  prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpRequestTimes *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry:        prometheus.NewRegistry(),
		aggregateWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregate_writes_total",
				Help:      "Committed aggregate inserts and updates by aggregate kind and resulting status",
			},
			[]string{"kind", "status"},
		),
		txRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tx_retries_total",
				Help:      "Transactions rerun after a serialization failure, deadlock or lock timeout",
			},
			[]string{"op"},
		),
		txExhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tx_retries_exhausted_total",
				Help:      "Operations that gave up after their last retry",
			},
			[]string{"op"},
		),
		retentionRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retention_runs_total",
				Help:      "Retention job runs by result",
			},
			[]string{"result"},
		),
		retentionPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retention_purged_orders_total",
			Help:      "Orders deleted by the retention job",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestTimes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}

	r.registry.MustRegister(
		r.aggregateWrites,
		r.txRetries,
		r.txExhausted,
		r.retentionRuns,
		r.retentionPurged,
		r.httpRequests,
		r.httpRequestTimes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Committed implements postgres.CommitObserver.
func (r *Recorder) Committed(written []postgres.WrittenAggregate) {
	for _, w := range written {
		r.aggregateWrites.WithLabelValues(w.Kind, w.Status).Inc()
	}
}

// Retried implements postgres.RetryObserver.
func (r *Recorder) Retried(op string) {
	r.txRetries.WithLabelValues(op).Inc()
}

func (r *Recorder) Exhausted(op string) {
	r.txExhausted.WithLabelValues(op).Inc()
}

// RetentionSucceeded records a run that deleted purged orders.
func (r *Recorder) RetentionSucceeded(purged int64) {
	r.retentionRuns.WithLabelValues("success").Inc()
	r.retentionPurged.Add(float64(purged))
}

func (r *Recorder) RetentionFailed() {
	r.retentionRuns.WithLabelValues("error").Inc()
}

// ObserveHTTP records one served request. An unmatched route is reported
// as "undefined" to keep label cardinality bounded.
func (r *Recorder) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if path == "" {
		path = "undefined"
	}
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpRequestTimes.WithLabelValues(path).Observe(elapsed.Seconds())
}

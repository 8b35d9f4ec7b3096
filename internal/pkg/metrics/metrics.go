// internal/pkg/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ammerola/parts-be/internal/core/domain"
)

// Metrics groups the Prometheus collectors exported by the api and the
// worker. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	importRows       *prometheus.CounterVec
	importRuns       *prometheus.CounterVec
	replenishRuns    *prometheus.CounterVec
	replenishedParts prometheus.Counter
	tasksEnqueued    *prometheus.CounterVec
	taskDuration     *prometheus.HistogramVec
}

// New creates and registers every collector on a private registry
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		importRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_rows_total",
				Help:      "CSV data rows processed, by outcome",
			},
			[]string{"outcome"},
		),
		importRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_runs_total",
				Help:      "CSV import runs, by status",
			},
			[]string{"status"},
		),
		replenishRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replenish_runs_total",
				Help:      "Stock replenishment runs, by status",
			},
			[]string{"status"},
		),
		replenishedParts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replenished_parts_total",
				Help:      "Parts whose quantity was raised to the minimum",
			},
		),
		tasksEnqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_enqueued_total",
				Help:      "Background tasks submitted, by type",
			},
			[]string{"type"},
		),
		taskDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "task_duration_seconds",
				Help:      "Background task processing time in seconds",
				Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"type", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.importRows,
		m.importRuns,
		m.replenishRuns,
		m.replenishedParts,
		m.tasksEnqueued,
		m.taskDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveImport records the outcome of one import run. result may be nil
// when the run failed before any row was read.
func (m *Metrics) ObserveImport(result *domain.ImportResult, err error) {
	if m == nil {
		return
	}
	if result != nil {
		m.importRows.WithLabelValues("created").Add(float64(result.Created))
		m.importRows.WithLabelValues("updated").Add(float64(result.Updated))
		m.importRows.WithLabelValues("skipped").Add(float64(result.Skipped))
	}
	m.importRuns.WithLabelValues(status(err)).Inc()
}

// ObserveReplenish records the outcome of one replenishment run
func (m *Metrics) ObserveReplenish(result *domain.ReplenishResult, err error) {
	if m == nil {
		return
	}
	if result != nil {
		m.replenishedParts.Add(float64(result.UpdatedCount))
	}
	m.replenishRuns.WithLabelValues(status(err)).Inc()
}

// TaskEnqueued records a submitted background task
func (m *Metrics) TaskEnqueued(taskType string) {
	if m == nil {
		return
	}
	m.tasksEnqueued.WithLabelValues(taskType).Inc()
}

// ObserveTask records how long a task handler ran
func (m *Metrics) ObserveTask(taskType string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.taskDuration.WithLabelValues(taskType, status(err)).Observe(elapsed.Seconds())
}

func status(err error) string {
	if err != nil {
		return "failed"
	}
	return "succeeded"
}

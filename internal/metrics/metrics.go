// Package metrics holds the Prometheus collectors for ingestion and the
// HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slackdb"

// Record outcomes.
const (
	OutcomePersisted = "persisted"
	OutcomeSkipped   = "skipped"
)

// Run results.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
	ResultEmpty  = "empty"
)

// Metrics bundles the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ingestRecords  *prometheus.CounterVec
	ingestRuns     *prometheus.CounterVec
	ingestDuration *prometheus.HistogramVec
	brandsCreated  prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ingestRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "records_total",
			Help:      "Source records processed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ingestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "runs_total",
			Help:      "Ingestion runs, by kind and result.",
		}, []string{"kind", "result"}),
		ingestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "duration_seconds",
			Help:      "Time spent ingesting one source file.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		brandsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "brands_created_total",
			Help:      "Brands created while resolving source records.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ingestRecords,
		m.ingestRuns,
		m.ingestDuration,
		m.brandsCreated,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordsProcessed adds n records of kind with the given outcome.
func (m *Metrics) RecordsProcessed(kind, outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ingestRecords.WithLabelValues(kind, outcome).Add(float64(n))
}

// IngestRun records one finished ingestion run.
func (m *Metrics) IngestRun(kind, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ingestRuns.WithLabelValues(kind, result).Inc()
	m.ingestDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// BrandsCreated adds n newly created brands.
func (m *Metrics) BrandsCreated(n int) {
	if m == nil || n == 0 {
		return
	}
	m.brandsCreated.Add(float64(n))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

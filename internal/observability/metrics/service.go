package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServiceMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	decisionRunsTotal *prometheus.CounterVec
	decisionDuration  *prometheus.HistogramVec
	stageTotal        *prometheus.CounterVec

	clauseCacheHits   *prometheus.CounterVec
	clauseCacheMisses *prometheus.CounterVec
}

func NewServiceMetrics(service string) *ServiceMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimsight",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "claimsight",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "claimsight",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	decisionRunsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimsight",
			Subsystem: "decision",
			Name:      "runs_total",
			Help:      "Total completed query runs by status.",
		},
		[]string{"service", "status"},
	)
	decisionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "claimsight",
			Subsystem: "decision",
			Name:      "run_duration_seconds",
			Help:      "Query run duration in seconds, stage delays included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	stageTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimsight",
			Subsystem: "decision",
			Name:      "stage_transitions_total",
			Help:      "Pipeline stage transitions observed during query runs.",
		},
		[]string{"service", "stage"},
	)
	clauseCacheHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimsight",
			Subsystem: "cache",
			Name:      "clause_hits_total",
			Help:      "Clause cache hits.",
		},
		[]string{"service"},
	)
	clauseCacheMisses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimsight",
			Subsystem: "cache",
			Name:      "clause_misses_total",
			Help:      "Clause cache misses.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		decisionRunsTotal,
		decisionDuration,
		stageTotal,
		clauseCacheHits,
		clauseCacheMisses,
	)

	return &ServiceMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		decisionRunsTotal: decisionRunsTotal,
		decisionDuration:  decisionDuration,
		stageTotal:        stageTotal,
		clauseCacheHits:   clauseCacheHits,
		clauseCacheMisses: clauseCacheMisses,
	}
}

func (m *ServiceMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServiceMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		rest := strings.TrimPrefix(path, "/v1/documents/")
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return "/v1/documents/{document_id}" + rest[idx:]
		}
		return "/v1/documents/{document_id}"
	case strings.HasPrefix(path, "/v1/audits/"):
		return "/v1/audits/{audit_id}"
	default:
		return path
	}
}

func (m *ServiceMetrics) RecordDecisionRun(service, status string, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}
	m.decisionRunsTotal.WithLabelValues(service, status).Inc()
	m.decisionDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *ServiceMetrics) RecordStage(service, stage string) {
	m.stageTotal.WithLabelValues(service, stage).Inc()
}

func (m *ServiceMetrics) RecordClauseCache(service string, hit bool) {
	if hit {
		m.clauseCacheHits.WithLabelValues(service).Inc()
		return
	}
	m.clauseCacheMisses.WithLabelValues(service).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Package metrics owns the Prometheus registry and the application's collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/dahira/internal/storage"
)

// Metrics collects Prometheus metrics for the server.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec

	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheInvalidations *prometheus.CounterVec

	paymentsRecorded  prometheus.Counter
	paymentsTruncated prometheus.Counter
	duesCollected     prometheus.Counter
	reportsGenerated  *prometheus.CounterVec
}

// New initializes a registry with process and Go runtime collectors plus the
// application metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dahira_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dahira_http_request_duration_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dahira_rpc_requests_total",
			Help: "Connect RPCs by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dahira_rpc_duration_seconds",
			Help:    "Connect RPC duration by procedure.",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dahira_cache_hits_total",
			Help: "Collection reads served from cache.",
		}, []string{"collection"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dahira_cache_misses_total",
			Help: "Collection reads that went to the database.",
		}, []string{"collection"}),
		cacheInvalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dahira_cache_invalidations_total",
			Help: "Cache invalidations caused by writes.",
		}, []string{"collection"}),
		paymentsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dahira_payments_recorded_total",
			Help: "Dues payments applied.",
		}),
		paymentsTruncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dahira_payments_truncated_total",
			Help: "Payments that exceeded the remaining due and were capped.",
		}),
		duesCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dahira_dues_collected_francs_total",
			Help: "Accepted dues, in F CFA, since process start.",
		}),
		reportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dahira_reports_generated_total",
			Help: "Report downloads by type and format.",
		}, []string{"type", "format"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.rpcRequests, m.rpcDuration,
		m.cacheHits, m.cacheMisses, m.cacheInvalidations,
		m.paymentsRecorded, m.paymentsTruncated, m.duesCollected, m.reportsGenerated,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.httpRequests.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// CacheHit, CacheMiss and CacheInvalidated match the cache hook signature.
func (m *Metrics) CacheHit(c storage.Collection) {
	if m != nil {
		m.cacheHits.WithLabelValues(string(c)).Inc()
	}
}

func (m *Metrics) CacheMiss(c storage.Collection) {
	if m != nil {
		m.cacheMisses.WithLabelValues(string(c)).Inc()
	}
}

func (m *Metrics) CacheInvalidated(c storage.Collection) {
	if m != nil {
		m.cacheInvalidations.WithLabelValues(string(c)).Inc()
	}
}

// PaymentRecorded counts an applied payment.
func (m *Metrics) PaymentRecorded(accepted, truncated int64) {
	if m == nil {
		return
	}
	m.paymentsRecorded.Inc()
	m.duesCollected.Add(float64(accepted))
	if truncated > 0 {
		m.paymentsTruncated.Inc()
	}
}

// ReportGenerated counts a report download.
func (m *Metrics) ReportGenerated(reportType, format string) {
	if m != nil {
		m.reportsGenerated.WithLabelValues(reportType, format).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working behind the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dahira/internal/storage"
)

func TestDomainCounters(t *testing.T) {
	m := New()

	m.PaymentRecorded(2000, 500)
	m.PaymentRecorded(1000, 0)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.paymentsRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsTruncated))
	assert.Equal(t, 3000.0, testutil.ToFloat64(m.duesCollected))

	m.CacheHit(storage.Members)
	m.CacheMiss(storage.Members)
	m.CacheInvalidated(storage.Cotisations)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("members")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidations.WithLabelValues("cotisations")))

	m.ObserveRPC("/dahira.v1.MemberService/ListMembers", "ok", 10*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/dahira.v1.MemberService/ListMembers", "ok")))

	m.ReportGenerated("event", "json")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportsGenerated.WithLabelValues("event", "json")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/reports/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/metrics", m.Handler().ServeHTTP)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/events/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/reports/events/{id}", "404")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dahira_http_requests_total")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.PaymentRecorded(1, 1)
	m.CacheHit(storage.Events)
	m.ObserveRPC("p", "ok", time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

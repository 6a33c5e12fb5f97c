package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bryanwahyu/pwncheck/internal/domain/breach"
)

// Metrics holds the Prometheus collectors for the HTTP surface.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestsInProgress prometheus.Gauge
	RequestLatency     *prometheus.HistogramVec
	LookupsTotal       *prometheus.CounterVec
	BreachesReturned   prometheus.Histogram
	ReportsGenerated   prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics registers all collectors on reg. Pass prometheus.NewRegistry()
// in tests to avoid duplicate registration on the default registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pwncheck_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "code"}),
		RequestsInProgress: f.NewGauge(prometheus.GaugeOpts{
			Name: "pwncheck_http_requests_in_progress",
			Help: "HTTP requests currently being served",
		}),
		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pwncheck_http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		LookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pwncheck_lookups_total",
			Help: "Breach lookups by outcome",
		}, []string{"outcome"}),
		BreachesReturned: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pwncheck_breaches_per_account",
			Help:    "Number of breaches returned for accounts that were found",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		ReportsGenerated: f.NewCounter(prometheus.CounterOpts{
			Name: "pwncheck_reports_generated_total",
			Help: "Reports written to disk",
		}),
		gatherer: reg,
	}
}

// ObserveLookup records one lookup outcome and, when found, how many
// breaches came back.
func (m *Metrics) ObserveLookup(outcome breach.Outcome, breaches int) {
	m.LookupsTotal.WithLabelValues(string(outcome)).Inc()
	if outcome == breach.OutcomeFound {
		m.BreachesReturned.Observe(float64(breaches))
	}
}

// ObserveLookupFailure records a lookup that never produced a result.
func (m *Metrics) ObserveLookupFailure() {
	m.LookupsTotal.WithLabelValues("failure").Inc()
}

// Middleware tracks request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.RequestsInProgress.Inc()
		defer m.RequestsInProgress.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(wrapped, r)

		route := routePattern(r)
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		m.RequestLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// routePattern returns the matched chi route so labels stay bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

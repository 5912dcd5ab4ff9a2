// Package metrics holds the client's Prometheus collectors and the
// /metrics endpoint.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the client-side Prometheus collectors
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Component metrics
	ViewReportsTotal   *prometheus.CounterVec
	FeedPagesTotal     *prometheus.CounterVec
	SearchQueriesTotal *prometheus.CounterVec
	AlertsTotal        *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// New creates collectors registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkbloom_http_requests_total",
				Help: "Total number of API requests issued",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inkbloom_http_request_duration_seconds",
				Help:    "API request latency in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		ViewReportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkbloom_view_reports_total",
				Help: "View report attempts by outcome (sent, suppressed, failed)",
			},
			[]string{"outcome"},
		),
		FeedPagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkbloom_feed_pages_total",
				Help: "Feed page fetches by outcome (loaded, exhausted, failed, skipped)",
			},
			[]string{"outcome"},
		),
		SearchQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkbloom_search_queries_total",
				Help: "Search queries by outcome (results, empty, stale, failed)",
			},
			[]string{"outcome"},
		),
		AlertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkbloom_alerts_total",
				Help: "Alerts shown by kind",
			},
			[]string{"kind"},
		),
	}
}

// Default returns the process-wide metrics instance
func Default() *Metrics {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// ObserveRequest records one completed API request.
func (m *Metrics) ObserveRequest(method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Inc bumps vec for label; nil receivers are ignored so components can
// run without metrics.
func (m *Metrics) Inc(vec *prometheus.CounterVec, label string) {
	if m == nil || vec == nil {
		return
	}
	vec.WithLabelValues(label).Inc()
}

// ViewReport counts one view report by outcome
func (m *Metrics) ViewReport(outcome string) {
	if m != nil {
		m.Inc(m.ViewReportsTotal, outcome)
	}
}

// FeedPage counts one feed fetch by outcome
func (m *Metrics) FeedPage(outcome string) {
	if m != nil {
		m.Inc(m.FeedPagesTotal, outcome)
	}
}

// SearchQuery counts one search by outcome
func (m *Metrics) SearchQuery(outcome string) {
	if m != nil {
		m.Inc(m.SearchQueriesTotal, outcome)
	}
}

// Alert counts one alert by kind
func (m *Metrics) Alert(kind string) {
	if m != nil {
		m.Inc(m.AlertsTotal, kind)
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

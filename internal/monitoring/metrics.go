// Package monitoring provides Prometheus metrics for the engine.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Build pipeline metrics
	BuildsTotal   *prometheus.CounterVec
	BuildDuration prometheus.Histogram

	// Runtime metrics
	RuntimesActive  prometheus.Gauge
	RuntimesOpened  prometheus.Counter
	DispatchesTotal *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector on a specific registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genapp_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "genapp_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		BuildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genapp_builds_total",
				Help: "Total number of build pipeline runs",
			},
			[]string{"status", "source"},
		),
		BuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "genapp_build_duration_seconds",
				Help:    "Build pipeline duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		RuntimesActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "genapp_runtimes_active",
				Help: "Currently open runtime sessions",
			},
		),
		RuntimesOpened: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "genapp_runtimes_opened_total",
				Help: "Total runtime sessions opened",
			},
		),
		DispatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genapp_dispatches_total",
				Help: "Total action dispatches into runtimes",
			},
			[]string{"transport"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "genapp_ws_connections",
				Help: "Active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genapp_ws_messages_total",
				Help: "Total WebSocket messages by type",
			},
			[]string{"type"},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "genapp_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordBuild records a build pipeline run
func (m *Metrics) RecordBuild(status, source string, duration time.Duration) {
	m.BuildsTotal.WithLabelValues(status, source).Inc()
	m.BuildDuration.Observe(duration.Seconds())
}

// UpdateUptime refreshes the uptime gauge
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

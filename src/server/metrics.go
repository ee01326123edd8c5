package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors on a private registry, so several
// servers (tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Renders        *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	Requests       *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listingcharts_renders_total",
				Help: "Chart renders by chart, format and result",
			},
			[]string{"chart", "format", "result"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "listingcharts_render_duration_seconds",
				Help:    "Time spent rendering one chart",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"chart", "format"},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "listingcharts_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}
	m.registry.MustRegister(m.Renders, m.RenderDuration, m.Requests,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(chart, format string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Renders.WithLabelValues(chart, format, result).Inc()
	m.RenderDuration.WithLabelValues(chart, format).Observe(time.Since(start).Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics for the engine API.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal  *prometheus.CounterVec
	latencySeconds *prometheus.HistogramVec
	parseResults   *prometheus.CounterVec
	subnetsPlanned prometheus.Counter
}

// NewMetrics creates and registers the API metrics on a private
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advcalc6_requests_total",
				Help: "Total API requests by operation and result",
			},
			[]string{"operation", "result"},
		),

		latencySeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advcalc6_request_latency_seconds",
				Help:    "API request latency by operation",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"operation"},
		),

		parseResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advcalc6_parse_results_total",
				Help: "Parsed addresses by validity",
			},
			[]string{"valid"},
		),

		subnetsPlanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "advcalc6_subnets_planned_total",
				Help: "Total subnet records generated by plan requests",
			},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.latencySeconds,
		m.parseResults,
		m.subnetsPlanned,
	)
	return m
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observe records one request outcome.
func (m *Metrics) observe(operation, result string, start time.Time) {
	m.requestsTotal.WithLabelValues(operation, result).Inc()
	m.latencySeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

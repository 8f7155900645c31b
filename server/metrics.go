package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "hyt_"

// Metrics are the server's prometheus collectors, in their own registry.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	simulations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// NewMetrics registers the server's collectors in a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulations_total",
				Help: "Total simulations by kind and result",
			},
			[]string{"kind", "result"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "simulation_latency_seconds",
				Help:    "Simulation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.requests, m.simulations, m.latency)
	return m
}

// observe records a simulation of kind that started at start.
func (m *Metrics) observe(kind string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.simulations.WithLabelValues(kind, result).Inc()
	m.latency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

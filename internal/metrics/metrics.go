// Package metrics exposes the Prometheus collectors served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentdesk_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RentalsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentdesk_rentals_created_total",
			Help: "Rentals created since process start.",
		},
	)

	ReturnsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rentdesk_returns_processed_total",
			Help: "Return operations processed since process start.",
		},
	)
)

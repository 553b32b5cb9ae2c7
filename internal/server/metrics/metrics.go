// Package metrics registers the server's Prometheus metrics and, when
// enabled, serves them over HTTP.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled protocol requests by action and
	// response status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_requests_total",
			Help: "Total protocol requests handled by the central server",
		},
		[]string{"action", "status"},
	)

	// RequestDuration observes per-request handling latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_request_duration_seconds",
			Help:    "Protocol request handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	// OpenConnections tracks currently connected stations.
	OpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rental_open_connections",
			Help: "Currently open station connections",
		},
	)
)

// ObserveRequest records one handled request.
func ObserveRequest(action, status string, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(action, status).Inc()
	RequestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// Serve exposes /metrics on addr. Blocks until the listener fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joemarks_http_requests_total",
		Help: "HTTP requests served, by method, route pattern, and status.",
	}, []string{"method", "path", "status"})

	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "joemarks_http_request_duration_seconds",
		Help:    "Time from request receipt to response completion.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	BookmarksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "joemarks_bookmarks_total",
		Help: "Total number of bookmarks in the database.",
	})
)

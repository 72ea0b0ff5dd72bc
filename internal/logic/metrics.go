package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	projectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "projection_requests_total",
		Help: "Projections completed, by matchup status",
	}, []string{"matchup_status"})

	projectionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "projection_failures_total",
		Help: "Projection requests that failed, by pipeline stage",
	}, []string{"stage"})

	projectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "projection_duration_seconds",
		Help:    "Time to run the full projection pipeline",
		Buckets: prometheus.DefBuckets,
	})

	rowsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamelog_rows_dropped_total",
		Help: "Game log rows dropped because a stat was missing or not numeric",
	})
)

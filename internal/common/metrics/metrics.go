// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SheetFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "criteria_sheet_fetches_total",
			Help: "Total number of remote criteria sheet fetches by status",
		},
		[]string{"status"},
	)

	SheetCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "criteria_cache_hits_total",
			Help: "Criteria reads served from the TTL cache",
		},
	)

	SheetCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "criteria_cache_misses_total",
			Help: "Criteria reads that triggered a synchronous re-fetch",
		},
	)

	EvaluationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluations_completed_total",
			Help: "Total number of evaluations completed by target typology",
		},
		[]string{"typology"},
	)

	EvaluationsDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "evaluations_degraded_total",
			Help: "Evaluations served with an empty criteria set after a source failure",
		},
	)

	EvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "evaluation_duration_seconds",
			Help: "Duration of evaluation processing in seconds",
		},
		[]string{"typology"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of live scoring sessions",
		},
	)
)

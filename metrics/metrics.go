// Package metrics holds the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CallsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitchhub_calls_analyzed_total",
		Help: "Completed calls run through the analysis engine.",
	})

	ScoringDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pitchhub_scoring_duration_seconds",
		Help:    "Wall time of analyze+score for one call.",
		Buckets: prometheus.DefBuckets,
	})

	ProfilerRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitchhub_profiler_runs_total",
		Help: "Weakness profiler refreshes.",
	})

	ContextBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitchhub_context_builds_total",
		Help: "Agent context compositions served.",
	})
)

// Package metrics provides Prometheus metrics for the dashboard backend:
// RED metrics for the HTTP layer plus counters and gauges for the
// reconciliation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nautilus"

var (
	// HTTPRequestTotal counts requests by method, path, status.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, path, and status.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDurationSeconds is request latency histogram.
	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10),
		},
		[]string{"method", "path"},
	)

	// PipelineRunsTotal counts reconciliation cycles by outcome (ok, error).
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total reconciliation cycles by outcome.",
		},
		[]string{"outcome"},
	)

	// PipelineRunDurationSeconds is full-cycle duration.
	PipelineRunDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_run_duration_seconds",
			Help:      "Reconciliation cycle duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ClustersDiscovered is the cluster count seen in the last cycle, by provider.
	ClustersDiscovered = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters_discovered",
			Help:      "Clusters discovered in the last cycle, by provider.",
		},
		[]string{"provider"},
	)

	// EnrichmentFailuresTotal counts clusters whose live-API enrichment failed.
	EnrichmentFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_failures_total",
			Help:      "Total clusters whose enrichment failed.",
		},
	)

	// ReconcileRows counts applied row changes by kind and action.
	ReconcileRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_rows_total",
			Help:      "Rows written by the reconciler, by kind and action.",
		},
		[]string{"kind", "action"},
	)

	// ScheduledRunsSkipped counts cron triggers skipped because a run was active.
	ScheduledRunsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_runs_skipped_total",
			Help:      "Cron triggers skipped because the previous run was still active.",
		},
	)
)

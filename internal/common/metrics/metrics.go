// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foresight_analyses_total",
			Help: "Completed analyses by recommendation path",
		},
		[]string{"path"},
	)

	LLMFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foresight_llm_failures_total",
			Help: "AI path failures that triggered the heuristic fallback",
		},
		[]string{"reason"},
	)

	SimilarTechniquesFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foresight_similar_techniques_filtered_total",
			Help: "Near-duplicate recommendations removed from AI results",
		},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foresight_analysis_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"path"},
	)

	CatalogTechniques = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foresight_catalog_techniques",
			Help: "Number of techniques in the loaded catalog",
		},
	)
)

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

	UniversityCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "university_candidates",
			Help:    "Size of the candidate set returned by a recommendation",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 75, 100},
		},
		[]string{"mode"},
	)

	UniversityCategories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "university_categories_total",
			Help: "Risk tiers assigned by the categorizer",
		},
		[]string{"category"},
	)

	CounsellorModelFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "counsellor_model_fallbacks_total",
			Help: "Generative model calls skipped over to the next fallback model",
		},
		[]string{"model"},
	)
)

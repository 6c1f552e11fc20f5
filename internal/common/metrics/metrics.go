// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepAdvances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_step_advances_total",
			Help: "Total number of successful step advances per wizard",
		},
		[]string{"wizard"},
	)

	StepValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_step_validation_failures_total",
			Help: "Total number of advances blocked by step validation",
		},
		[]string{"wizard"},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of successful submissions per wizard",
		},
		[]string{"wizard"},
	)

	SubmissionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_failed_total",
			Help: "Total number of failed submissions per wizard",
		},
		[]string{"wizard", "error_code"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_submission_duration_seconds",
			Help: "Duration of scoring-service submissions in seconds",
		},
		[]string{"wizard"},
	)

	SessionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_sessions_created_total",
			Help: "Total number of abandonment-tracking sessions created",
		},
		[]string{"wizard"},
	)

	SessionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_sessions_failed_total",
			Help: "Total number of session create/complete failures (silent)",
		},
		[]string{"wizard", "operation"},
	)
)

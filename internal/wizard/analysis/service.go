package analysis

import (
	"context"
	"strings"
	"time"

	"leme-intake/internal/common/errors"
	"leme-intake/internal/common/logger"
	"leme-intake/internal/common/metrics"
	"leme-intake/internal/common/observability"
	"leme-intake/internal/common/scoring"
	"leme-intake/internal/common/validation"
	"leme-intake/internal/models"
	"leme-intake/internal/wizard/session"
)

const wizardName = "analise"

// ScoringAPI is the slice of the scoring client the service needs.
type ScoringAPI interface {
	SubmitAnalysis(ctx context.Context, payload map[string]interface{}) (*scoring.AnalysisResult, error)
}

// Service owns the submission pipeline: authoritative whole-form
// validation, payload assembly, the schema guard, the network call and
// best-effort session reconciliation.
type Service struct {
	api        ScoringAPI
	correlator *session.Correlator
	obs        *observability.Observability
	log        logger.Logger
}

func NewService(api ScoringAPI, correlator *session.Correlator, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		api:        api,
		correlator: correlator,
		obs:        obs,
		log:        log,
	}
}

// Submit runs the full pipeline and returns the record identifier the
// caller routes to. The returned Result carries per-field errors when
// validation refuses the draft; no network I/O happens in that case.
func (s *Service) Submit(ctx context.Context, draft *models.AnalysisDraft) (string, validation.Result, error) {
	result := ValidateAll(draft)
	if !result.Valid {
		metrics.SubmissionsFailed.WithLabelValues(wizardName, string(errors.ErrCodeValidationFailed)).Inc()
		s.log.Info("submission refused by whole-form validation", map[string]interface{}{
			"wizard": wizardName,
			"fields": result.Errors.Messages(),
		})
		return "", result, errors.NewValidationFailedError(strings.Join(result.Errors.Messages(), "; "))
	}

	payload := draft.Payload()
	if schemaResult := validation.ValidatePayload(payload, payloadSchema); !schemaResult.Valid {
		metrics.SubmissionsFailed.WithLabelValues(wizardName, string(errors.ErrCodeValidationFailed)).Inc()
		s.log.Error("assembled payload failed schema guard", map[string]interface{}{
			"wizard": wizardName,
			"errors": schemaResult.GetErrorMessages(),
		})
		return "", result, errors.NewValidationFailedError(strings.Join(schemaResult.GetErrorMessages(), "; "))
	}

	start := time.Now()
	submitted, err := s.api.SubmitAnalysis(ctx, payload)
	duration := time.Since(start)
	metrics.SubmissionDuration.WithLabelValues(wizardName).Observe(duration.Seconds())
	if s.obs != nil {
		s.obs.RecordSubmissionDuration(ctx, wizardName, float64(duration.Milliseconds()))
	}

	if err != nil {
		var stdErr *errors.StandardError
		if scoring.IsTimeout(err) {
			stdErr = errors.NewSubmissionTimeoutError()
		} else {
			stdErr = errors.NewSubmissionFailedError(err)
		}
		metrics.SubmissionsFailed.WithLabelValues(wizardName, string(stdErr.Code)).Inc()
		if s.obs != nil {
			s.obs.RecordSubmission(ctx, wizardName, "failed")
		}
		s.log.WithError(err).Error("analysis submission failed", map[string]interface{}{
			"wizard":      wizardName,
			"duration_ms": duration.Milliseconds(),
		})
		return "", result, stdErr
	}

	metrics.Submissions.WithLabelValues(wizardName).Inc()
	if s.obs != nil {
		s.obs.RecordSubmission(ctx, wizardName, "success")
	}
	s.log.Info("analysis submitted", map[string]interface{}{
		"wizard":      wizardName,
		"record_id":   submitted.ID,
		"duration_ms": duration.Milliseconds(),
	})

	if s.correlator != nil {
		s.correlator.Complete(ctx, submitted.ID)
	}

	return submitted.ID, result, nil
}

package preopening

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
)

const wizardName = "pre_abertura"

// ScoringAPI is the slice of the scoring client the service needs.
type ScoringAPI interface {
	SubmitPreOpening(ctx context.Context, payload map[string]interface{}) (*scoring.PreOpeningResult, error)
}

// Service owns the pre-opening submission pipeline. Unlike the
// analysis flow there is no session correlation: the identifying email
// is optional and only arrives on the last step.
type Service struct {
	api ScoringAPI
	obs *observability.Observability
	log logger.Logger
}

func NewService(api ScoringAPI, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		api: api,
		obs: obs,
		log: log,
	}
}

// Submit validates the whole draft, assembles and guards the payload
// and posts it. The returned result carries the derived comparatives,
// alerts and checklist the results view renders.
func (s *Service) Submit(ctx context.Context, draft *models.PreOpeningDraft) (*scoring.PreOpeningResult, validation.Result, error) {
	result := ValidateAll(draft)
	if !result.Valid {
		metrics.SubmissionsFailed.WithLabelValues(wizardName, string(errors.ErrCodeValidationFailed)).Inc()
		s.log.Info("submission refused by whole-form validation", map[string]interface{}{
			"wizard": wizardName,
			"fields": result.Errors.Messages(),
		})
		return nil, result, errors.NewValidationFailedError(strings.Join(result.Errors.Messages(), "; "))
	}

	payload := draft.Payload()
	if schemaResult := validation.ValidatePayload(payload, payloadSchema); !schemaResult.Valid {
		metrics.SubmissionsFailed.WithLabelValues(wizardName, string(errors.ErrCodeValidationFailed)).Inc()
		s.log.Error("assembled payload failed schema guard", map[string]interface{}{
			"wizard": wizardName,
			"errors": schemaResult.GetErrorMessages(),
		})
		return nil, result, errors.NewValidationFailedError(strings.Join(schemaResult.GetErrorMessages(), "; "))
	}

	start := time.Now()
	submitted, err := s.api.SubmitPreOpening(ctx, payload)
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
		s.log.WithError(err).Error("pre-opening submission failed", map[string]interface{}{
			"wizard":      wizardName,
			"duration_ms": duration.Milliseconds(),
		})
		return nil, result, stdErr
	}

	metrics.Submissions.WithLabelValues(wizardName).Inc()
	if s.obs != nil {
		s.obs.RecordSubmission(ctx, wizardName, "success")
	}
	s.log.Info("pre-opening analysis submitted", map[string]interface{}{
		"wizard":      wizardName,
		"record_id":   submitted.ID,
		"duration_ms": duration.Milliseconds(),
	})

	return submitted, result, nil
}

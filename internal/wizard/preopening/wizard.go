package preopening

import (
	"context"
	"fmt"
	"sync"
	"time"

	"leme-intake/internal/common/errors"
	"leme-intake/internal/common/logger"
	"leme-intake/internal/common/metrics"
	"leme-intake/internal/common/scoring"
	"leme-intake/internal/common/validation"
	"leme-intake/internal/models"
)

// Wizard is the stateful engine behind the pre-opening flow.
type Wizard struct {
	service *Service
	log     logger.Logger
	clock   func() time.Time

	mu        sync.Mutex
	draft     *models.PreOpeningDraft
	step      Step
	errors    validation.FieldErrors
	alerts    []string
	busy      bool
	submitted bool
	result    *scoring.PreOpeningResult
	submitErr string
}

// NewWizard builds a fresh wizard. The clock seeds the opening
// forecast defaults and is re-consulted by Reset.
func NewWizard(service *Service, log logger.Logger, clock func() time.Time) *Wizard {
	if clock == nil {
		clock = time.Now
	}
	return &Wizard{
		service: service,
		log:     log,
		clock:   clock,
		draft:   models.NewPreOpeningDraft(clock()),
		step:    Start(),
		errors:  validation.FieldErrors{},
	}
}

// ==========================
// Snapshots
// ==========================

// Draft returns a snapshot of the current answers.
func (w *Wizard) Draft() models.PreOpeningDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.draft
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Errors() validation.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := validation.FieldErrors{}
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

func (w *Wizard) Alerts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.alerts...)
}

// Progress reports the display percentage, 100 only after a confirmed
// submission.
func (w *Wizard) Progress() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return 100
	}
	return Progress(w.step, w.draft)
}

func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Result returns the scored outcome after a successful submission.
func (w *Wizard) Result() *scoring.PreOpeningResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// RecordID returns the identifier of the submitted analysis, empty
// until a submission succeeds.
func (w *Wizard) RecordID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return ""
	}
	return w.result.ID
}

// SubmitError returns the user-facing failure message of the last
// submission attempt.
func (w *Wizard) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitErr
}

// IsLastStep reports whether the user sits on the final question.
func (w *Wizard) IsLastStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step == StepClients
}

// ==========================
// Field updates
// ==========================

// UpdateField applies exactly one answer, addressed by its wire name,
// and clears that field's blocking error.
func (w *Wizard) UpdateField(name string, value interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.applyField(name, value); err != nil {
		return err
	}
	w.errors.Clear(name)
	return nil
}

func (w *Wizard) applyField(name string, value interface{}) error {
	switch name {
	case "tipo_negocio":
		return setString(name, value, &w.draft.BusinessType)
	case "setor":
		return setString(name, value, &w.draft.Sector)
	case "estado":
		return setString(name, value, &w.draft.State)
	case "cidade":
		return setString(name, value, &w.draft.City)
	case "prolabore":
		return setString(name, value, &w.draft.PayrollDraw)
	case "faixa_funcionarios":
		return setString(name, value, &w.draft.EmployeeRange)
	case "clientes_garantidos":
		return setString(name, value, &w.draft.GuaranteedClients)
	case "email":
		return setString(name, value, &w.draft.Email)
	case "mes_abertura":
		return setInt(name, value, &w.draft.OpeningMonth)
	case "ano_abertura":
		return setInt(name, value, &w.draft.OpeningYear)
	case "capital_disponivel":
		return setAmount(name, value, &w.draft.AvailableCapital)
	case "faturamento_esperado":
		return setAmount(name, value, &w.draft.ExpectedRevenue)
	case "tem_estoque":
		return setOptionalBool(name, value, &w.draft.HasInventory)
	case "tem_funcionarios":
		return setOptionalBool(name, value, &w.draft.HasEmployees)
	}
	return errors.NewInvalidFieldError(name, "unknown field")
}

// ==========================
// Navigation
// ==========================

// Advance validates the current step and moves forward when it passes,
// honoring the inventory skip. On the last step it triggers final
// submission instead. Refused while a submission is in flight.
func (w *Wizard) Advance(ctx context.Context) bool {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return false
	}

	result := ValidateStep(w.draft, w.step)
	w.errors = result.Errors
	w.alerts = result.Alerts
	if !result.Valid {
		metrics.StepValidationFailures.WithLabelValues(wizardName).Inc()
		w.log.Debug("step validation failed", map[string]interface{}{
			"wizard": wizardName,
			"fields": result.Errors.Messages(),
		})
		w.mu.Unlock()
		return false
	}

	next, ok := Next(w.step, w.draft)
	if !ok {
		w.mu.Unlock()
		return w.Submit(ctx) == nil
	}

	w.step = next
	metrics.StepAdvances.WithLabelValues(wizardName).Inc()
	w.mu.Unlock()
	return true
}

// Retreat moves one step back, clearing errors. No-op at the first
// step and while a submission is in flight.
func (w *Wizard) Retreat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return false
	}
	prev, ok := Previous(w.step, w.draft)
	if !ok {
		return false
	}
	w.step = prev
	w.errors = validation.FieldErrors{}
	w.alerts = nil
	return true
}

// GoToStep jumps directly to a step, clearing errors. Used by the
// review screen; validation still happens on the way forward.
func (w *Wizard) GoToStep(step Step) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy || step < StepBusinessType || step > StepClients {
		return false
	}
	w.step = step
	w.errors = validation.FieldErrors{}
	w.alerts = nil
	return true
}

// Reset discards every answer and outcome, returning the wizard to a
// fresh draft. Refused while a submission is in flight.
func (w *Wizard) Reset() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return false
	}
	w.draft = models.NewPreOpeningDraft(w.clock())
	w.step = Start()
	w.errors = validation.FieldErrors{}
	w.alerts = nil
	w.submitted = false
	w.result = nil
	w.submitErr = ""
	return true
}

// ==========================
// Submission
// ==========================

// Submit runs the final pipeline. A second call while one is in flight
// is rejected with SUBMISSION_IN_FLIGHT and performs no network I/O.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return errors.NewSubmissionInFlightError()
	}
	w.busy = true
	w.submitErr = ""
	draft := *w.draft
	w.mu.Unlock()

	submitted, result, err := w.service.Submit(ctx, &draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false

	if err != nil {
		if errors.IsCode(err, errors.ErrCodeValidationFailed) && len(result.Errors) > 0 {
			w.errors = result.Errors
			w.alerts = result.Alerts
		} else {
			w.submitErr = errors.UserMessage(err)
		}
		return err
	}

	w.submitted = true
	w.result = submitted
	w.errors = validation.FieldErrors{}
	w.alerts = nil
	return nil
}

// ==========================
// Typed setters
// ==========================

func setString(field string, value interface{}, dst *string) error {
	s, ok := value.(string)
	if !ok {
		return errors.NewInvalidFieldError(field, fmt.Sprintf("expected string, got %T", value))
	}
	*dst = s
	return nil
}

func setInt(field string, value interface{}, dst *int) error {
	switch v := value.(type) {
	case int:
		*dst = v
	case float64:
		*dst = int(v)
	default:
		return errors.NewInvalidFieldError(field, fmt.Sprintf("expected integer, got %T", value))
	}
	return nil
}

func setAmount(field string, value interface{}, dst *float64) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	default:
		return errors.NewInvalidFieldError(field, fmt.Sprintf("expected number, got %T", value))
	}
	return nil
}

func setOptionalBool(field string, value interface{}, dst **bool) error {
	if value == nil {
		*dst = nil
		return nil
	}
	b, ok := value.(bool)
	if !ok {
		return errors.NewInvalidFieldError(field, fmt.Sprintf("expected bool, got %T", value))
	}
	*dst = &b
	return nil
}

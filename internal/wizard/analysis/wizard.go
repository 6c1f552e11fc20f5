package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"leme-intake/internal/common/errors"
	"leme-intake/internal/common/logger"
	"leme-intake/internal/common/metrics"
	"leme-intake/internal/common/validation"
	"leme-intake/internal/models"
	"leme-intake/internal/wizard/session"
)

// Wizard is the stateful engine behind the analysis flow. The
// presentation layer reads its snapshots and drives it exclusively
// through UpdateField, Advance, Retreat and Submit.
type Wizard struct {
	service    *Service
	correlator *session.Correlator
	log        logger.Logger

	mu        sync.Mutex
	draft     *models.AnalysisDraft
	pos       Position
	errors    validation.FieldErrors
	alerts    []string
	busy      bool
	submitted bool
	recordID  string
	submitErr string
}

// NewWizard builds a fresh wizard. The clock value seeds the draft's
// reference period; callers pass time.Now outside of tests.
func NewWizard(service *Service, correlator *session.Correlator, log logger.Logger, now time.Time) *Wizard {
	return &Wizard{
		service:    service,
		correlator: correlator,
		log:        log,
		draft:      models.NewAnalysisDraft(now),
		pos:        Start(),
		errors:     validation.FieldErrors{},
	}
}

// ==========================
// Snapshots
// ==========================

// Draft returns a snapshot of the current answers.
func (w *Wizard) Draft() models.AnalysisDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.draft
}

func (w *Wizard) Position() Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pos
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

// Progress reports the display percentage for the current position.
// 100 only after a confirmed submission.
func (w *Wizard) Progress() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitted {
		return 100
	}
	return Progress(w.pos)
}

func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// RecordID returns the identifier of the submitted analysis, empty
// until a submission succeeds. The caller routes to the results view
// with it.
func (w *Wizard) RecordID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recordID
}

// SubmitError returns the user-facing failure message of the last
// submission attempt, empty when none is pending display.
func (w *Wizard) SubmitError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitErr
}

// ==========================
// Field updates
// ==========================

// UpdateField applies exactly one answer, addressed by its wire name,
// and clears that field's blocking error. The draft stays permissive:
// a toggle and its dependent value may arrive in any order, the
// validator enforces consistency at advancement time.
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
	case "nome_empresa":
		return setString(name, value, &w.draft.CompanyName)
	case "email":
		return setString(name, value, &w.draft.Email)
	case "setor":
		return setString(name, value, &w.draft.Sector)
	case "estado":
		return setString(name, value, &w.draft.State)
	case "metodo_entrada":
		return setString(name, value, &w.draft.EntryMethod)
	case "ref_parceiro":
		return setString(name, value, &w.draft.ReferralPartner)
	case "mes_referencia":
		return setInt(name, value, &w.draft.ReferenceMonth)
	case "ano_referencia":
		return setInt(name, value, &w.draft.ReferenceYear)
	case "num_funcionarios":
		return setInt(name, value, &w.draft.EmployeeCount)
	case "receita_atual":
		return setAmount(name, value, &w.draft.CurrentRevenue)
	case "custo_vendas":
		return setAmount(name, value, &w.draft.CostOfSales)
	case "despesas_fixas":
		return setAmount(name, value, &w.draft.FixedExpenses)
	case "caixa_bancos":
		return setAmount(name, value, &w.draft.CashOnHand)
	case "contas_receber":
		return setAmount(name, value, &w.draft.AccountsReceivable)
	case "contas_pagar":
		return setAmount(name, value, &w.draft.AccountsPayable)
	case "tem_estoque":
		return setBool(name, value, &w.draft.HasInventory)
	case "tem_dividas":
		return setBool(name, value, &w.draft.HasDebt)
	case "tem_bens":
		return setBool(name, value, &w.draft.HasAssets)
	case "estoque":
		return setOptionalAmount(name, value, &w.draft.Inventory)
	case "dividas_totais":
		return setOptionalAmount(name, value, &w.draft.TotalDebt)
	case "bens_equipamentos":
		return setOptionalAmount(name, value, &w.draft.AssetsValue)
	}
	return errors.NewInvalidFieldError(name, "unknown field")
}

// UpdateRevenueHistory applies one figure of the historical-revenue
// group.
func (w *Wizard) UpdateRevenueHistory(sub string, value float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch sub {
	case "tres_meses_atras":
		w.draft.RevenueHistory.ThreeMonthsAgo = value
	case "dois_meses_atras":
		w.draft.RevenueHistory.TwoMonthsAgo = value
	case "mes_passado":
		w.draft.RevenueHistory.LastMonth = value
	default:
		return errors.NewInvalidFieldError(sub, "unknown revenue history field")
	}
	return nil
}

// ==========================
// Navigation
// ==========================

// Advance validates the current step and moves forward when it passes.
// On the terminal node it triggers final submission instead. Refused
// while a submission is in flight.
func (w *Wizard) Advance(ctx context.Context) bool {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return false
	}

	result := ValidateStep(w.draft, w.pos)
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

	leavingIdentification := w.pos.Step == StepIdentification
	companyName, email := w.draft.CompanyName, w.draft.Email

	next, ok := Next(w.pos, w.draft)
	if !ok {
		w.mu.Unlock()
		return w.Submit(ctx) == nil
	}

	w.pos = next
	metrics.StepAdvances.WithLabelValues(wizardName).Inc()
	w.mu.Unlock()

	// Session correlation fires on this one edge only and never blocks
	// navigation.
	if leavingIdentification && w.correlator != nil {
		w.correlator.Begin(companyName, email)
	}
	return true
}

// Retreat moves one position back, clearing errors and alerts. No-op
// at the first node and while a submission is in flight.
func (w *Wizard) Retreat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return false
	}
	prev, ok := Previous(w.pos, w.draft)
	if !ok {
		return false
	}
	w.pos = prev
	w.errors = validation.FieldErrors{}
	w.alerts = nil
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

	recordID, result, err := w.service.Submit(ctx, &draft)

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
	w.recordID = recordID
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

func setBool(field string, value interface{}, dst *bool) error {
	b, ok := value.(bool)
	if !ok {
		return errors.NewInvalidFieldError(field, fmt.Sprintf("expected bool, got %T", value))
	}
	*dst = b
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
	f, ok := toAmount(value)
	if !ok {
		return errors.NewInvalidFieldError(field, fmt.Sprintf("expected number, got %T", value))
	}
	*dst = f
	return nil
}

func setOptionalAmount(field string, value interface{}, dst **float64) error {
	if value == nil {
		*dst = nil
		return nil
	}
	f, ok := toAmount(value)
	if !ok {
		return errors.NewInvalidFieldError(field, fmt.Sprintf("expected number, got %T", value))
	}
	*dst = &f
	return nil
}

func toAmount(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

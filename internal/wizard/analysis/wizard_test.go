package analysis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leme-intake/internal/common/errors"
	"leme-intake/internal/common/logger"
	"leme-intake/internal/common/scoring"
	"leme-intake/internal/common/storage"
	"leme-intake/internal/wizard/session"
)

// scoringStub stands in for the scoring service across the package
// tests. When block is set, SubmitAnalysis parks until it is closed.
type scoringStub struct {
	mu            sync.Mutex
	submitCalls   int
	createCalls   int
	completeCalls int
	lastPayload   map[string]interface{}
	submitErr     error
	createErr     error
	completeErr   error
	block         chan struct{}
	recordID      string
	sessionID     string
}

func (s *scoringStub) SubmitAnalysis(_ context.Context, payload map[string]interface{}) (*scoring.AnalysisResult, error) {
	s.mu.Lock()
	s.submitCalls++
	s.lastPayload = payload
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	id := s.recordID
	if id == "" {
		id = "analise-1"
	}
	return &scoring.AnalysisResult{ID: id}, nil
}

func (s *scoringStub) CreateSession(_ context.Context, _, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.createErr != nil {
		return "", s.createErr
	}
	id := s.sessionID
	if id == "" {
		id = "sess-1"
	}
	return id, nil
}

func (s *scoringStub) CompleteSession(_ context.Context, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completeCalls++
	return s.completeErr
}

func (s *scoringStub) calls() (submits, creates, completes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitCalls, s.createCalls, s.completeCalls
}

func newTestWizard(stub *scoringStub) (*Wizard, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	log := logger.NewNoOpLogger()
	correlator := session.NewCorrelator(stub, store, log, time.Second, wizardName)
	service := NewService(stub, correlator, nil, log)
	return NewWizard(service, correlator, log, testNow()), store
}

func fillValidDraft(t *testing.T, w *Wizard) {
	t.Helper()
	for name, value := range map[string]interface{}{
		"nome_empresa":   "Padaria do Zé",
		"email":          "ze@example.com",
		"setor":          "alimentacao",
		"estado":         "SP",
		"receita_atual":  25000.0,
		"custo_vendas":   9000.0,
		"despesas_fixas": 7000.0,
		"caixa_bancos":   12000.0,
	} {
		require.NoError(t, w.UpdateField(name, value))
	}
}

func TestNewWizardDefaults(t *testing.T) {
	w, _ := newTestWizard(&scoringStub{})
	d := w.Draft()

	// testNow is March 2026, so the reference period is February 2026.
	assert.Equal(t, 2, d.ReferenceMonth)
	assert.Equal(t, 2026, d.ReferenceYear)
	assert.Equal(t, 1, d.EmployeeCount)
	assert.Equal(t, Start(), w.Position())
	assert.Equal(t, 0, w.Progress())
}

func TestUpdateField(t *testing.T) {
	t.Run("rejects unknown field", func(t *testing.T) {
		w, _ := newTestWizard(&scoringStub{})
		err := w.UpdateField("nome_fantasia", "x")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidField))
	})

	t.Run("rejects wrong type", func(t *testing.T) {
		w, _ := newTestWizard(&scoringStub{})
		err := w.UpdateField("receita_atual", "muito")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidField))
	})

	t.Run("clears only its own error", func(t *testing.T) {
		// Scenario: the debt step blocked with a zero amount while an
		// older email error is still pending.
		w, _ := newTestWizard(&scoringStub{})
		require.NoError(t, w.UpdateField("tem_dividas", true))
		require.NoError(t, w.UpdateField("dividas_totais", 0.0))
		w.pos = Position{Step: StepFinancials, Micro: MicroDebt}

		assert.False(t, w.Advance(context.Background()))
		w.errors["email"] = "Email inválido"

		require.NoError(t, w.UpdateField("dividas_totais", 5000.0))

		errs := w.Errors()
		assert.False(t, errs.Has("dividas_totais"))
		assert.True(t, errs.Has("email"), "unrelated error must survive the edit")

		assert.True(t, w.Advance(context.Background()))
	})
}

func TestAdvanceBlocksOnInvalidStep(t *testing.T) {
	// Identification with an empty email: advance fails and the
	// position never moves.
	stub := &scoringStub{}
	w, _ := newTestWizard(stub)
	require.NoError(t, w.UpdateField("nome_empresa", "Padaria do Zé"))

	ok := w.Advance(context.Background())

	assert.False(t, ok)
	assert.Equal(t, Start(), w.Position())
	assert.True(t, w.Errors().Has("email"))

	_, creates, _ := stub.calls()
	assert.Zero(t, creates, "no session without leaving identification")
}

func TestAdvanceFiresSessionOnIdentificationEdgeOnly(t *testing.T) {
	stub := &scoringStub{}
	w, store := newTestWizard(stub)
	fillValidDraft(t, w)

	require.True(t, w.Advance(context.Background()))

	require.Eventually(t, func() bool {
		_, creates, _ := stub.calls()
		return creates == 1
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		value, found, err := store.Get(context.Background(), session.StorageKey)
		return err == nil && found && value == "sess-1"
	}, time.Second, 10*time.Millisecond)

	// Subsequent edges never create another session.
	require.True(t, w.Advance(context.Background()))
	require.True(t, w.Advance(context.Background()))
	time.Sleep(50 * time.Millisecond)
	_, creates, _ := stub.calls()
	assert.Equal(t, 1, creates)
}

func TestAdvanceSurvivesSessionFailure(t *testing.T) {
	stub := &scoringStub{createErr: context.DeadlineExceeded}
	w, _ := newTestWizard(stub)
	fillValidDraft(t, w)

	assert.True(t, w.Advance(context.Background()))
	assert.Equal(t, Position{Step: StepBasicInfo}, w.Position())
}

func TestRetreat(t *testing.T) {
	w, _ := newTestWizard(&scoringStub{})
	fillValidDraft(t, w)

	assert.False(t, w.Retreat(), "retreat before the first node is a no-op")

	require.True(t, w.Advance(context.Background()))
	w.errors["setor"] = "Selecione o setor"

	assert.True(t, w.Retreat())
	assert.Equal(t, Start(), w.Position())
	assert.Empty(t, w.Errors(), "navigation clears errors wholesale")
}

func TestFullFlowEndsInSubmission(t *testing.T) {
	stub := &scoringStub{recordID: "analise-42"}
	w, store := newTestWizard(stub)
	fillValidDraft(t, w)

	lastProgress := -1
	for i := 0; i < 8; i++ {
		require.True(t, w.Advance(context.Background()), "advance %d, errors: %v", i, w.Errors())
		require.GreaterOrEqual(t, w.Progress(), lastProgress)
		lastProgress = w.Progress()
	}
	assert.Equal(t, Position{Step: StepFinancials, Micro: MicroHeadcount}, w.Position())

	// Let the background session land so completion has a token.
	require.Eventually(t, func() bool {
		_, creates, _ := stub.calls()
		return creates == 1
	}, time.Second, 10*time.Millisecond)

	// Advancing past the terminal node submits instead.
	require.True(t, w.Advance(context.Background()))

	assert.Equal(t, "analise-42", w.RecordID())
	assert.Equal(t, 100, w.Progress())
	assert.False(t, w.Busy())

	submits, _, completes := stub.calls()
	assert.Equal(t, 1, submits)
	assert.Equal(t, 1, completes)

	_, found, err := store.Get(context.Background(), session.StorageKey)
	require.NoError(t, err)
	assert.False(t, found, "completed session leaves no token behind")
}

func TestSubmitRejectsConcurrentAttempts(t *testing.T) {
	stub := &scoringStub{block: make(chan struct{})}
	w, _ := newTestWizard(stub)
	fillValidDraft(t, w)

	first := make(chan error, 1)
	go func() {
		first <- w.Submit(context.Background())
	}()

	require.Eventually(t, w.Busy, time.Second, 5*time.Millisecond)

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSubmissionInFlight))

	assert.False(t, w.Advance(context.Background()), "navigation is refused while busy")
	assert.False(t, w.Retreat())

	close(stub.block)
	require.NoError(t, <-first)

	submits, _, _ := stub.calls()
	assert.Equal(t, 1, submits, "exactly one network submission")
}

func TestSubmitFailureSurfacesMessageAndAllowsRetry(t *testing.T) {
	stub := &scoringStub{submitErr: context.DeadlineExceeded}
	w, _ := newTestWizard(stub)
	fillValidDraft(t, w)

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSubmissionTimeout))
	assert.Equal(t, "Erro ao processar análise. Tente novamente.", w.SubmitError())
	assert.False(t, w.Busy(), "busy flag is cleared so the user may retry")
	assert.Empty(t, w.RecordID())

	// Manual retry succeeds once the service recovers.
	stub.submitErr = nil
	require.NoError(t, w.Submit(context.Background()))
	assert.Empty(t, w.SubmitError())
	assert.NotEmpty(t, w.RecordID())
}

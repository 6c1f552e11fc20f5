package session

import (
	"context"
	"sync"
	"time"

	"leme-intake/internal/common/logger"
	"leme-intake/internal/common/metrics"
	"leme-intake/internal/common/storage"
)

// StorageKey is the durable storage slot holding the session token.
// The correlator is its only writer.
const StorageKey = "leme:sessao_id"

// API is the slice of the scoring service the correlator needs.
type API interface {
	CreateSession(ctx context.Context, companyName, email string) (string, error)
	CompleteSession(ctx context.Context, sessionID, recordID string) error
}

// Correlator links an in-progress wizard to a backend session record
// for abandonment tracking. Every operation is best effort: failures
// are logged and swallowed, and nothing in the wizard ever blocks on
// the correlator.
type Correlator struct {
	api     API
	store   storage.DurableStore
	log     logger.Logger
	timeout time.Duration
	wizard  string

	mu    sync.Mutex
	token string
	begun bool
}

func NewCorrelator(api API, store storage.DurableStore, log logger.Logger, timeout time.Duration, wizard string) *Correlator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Correlator{
		api:     api,
		store:   store,
		log:     log,
		timeout: timeout,
		wizard:  wizard,
	}
}

// Token returns the current session token, empty when no session exists.
func (c *Correlator) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Resume recovers a token persisted by a previous run of the same
// client context. A missing or unreadable slot means no session.
func (c *Correlator) Resume(ctx context.Context) {
	value, found, err := c.store.Get(ctx, StorageKey)
	if err != nil {
		c.log.Warn("failed to read persisted session token", map[string]interface{}{
			"wizard": c.wizard,
			"error":  err.Error(),
		})
		return
	}
	if !found {
		return
	}
	c.mu.Lock()
	c.token = value
	c.begun = true
	c.mu.Unlock()
	c.log.Debug("resumed session from storage", map[string]interface{}{
		"wizard":     c.wizard,
		"session_id": value,
	})
}

// Begin creates the backend session in the background. It fires at
// most once per correlator; the wizard engine calls it on the single
// edge where the identifying fields become available. Navigation never
// waits for the result.
func (c *Correlator) Begin(companyName, email string) {
	c.mu.Lock()
	if c.begun {
		c.mu.Unlock()
		return
	}
	c.begun = true
	c.mu.Unlock()

	go c.begin(companyName, email)
}

func (c *Correlator) begin(companyName, email string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	token, err := c.api.CreateSession(ctx, companyName, email)
	if err != nil {
		metrics.SessionsFailed.WithLabelValues(c.wizard, "create").Inc()
		c.log.Warn("session creation failed", map[string]interface{}{
			"wizard": c.wizard,
			"error":  err.Error(),
		})
		return
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	metrics.SessionsCreated.WithLabelValues(c.wizard).Inc()

	if err := c.store.Set(ctx, StorageKey, token); err != nil {
		c.log.Warn("failed to persist session token", map[string]interface{}{
			"wizard":     c.wizard,
			"session_id": token,
			"error":      err.Error(),
		})
		return
	}

	c.log.Info("session created", map[string]interface{}{
		"wizard":     c.wizard,
		"session_id": token,
	})
}

// Complete links the session to the finished record and clears the
// storage slot. On failure the token stays in place; the session is
// advisory data and leaking it is acceptable.
func (c *Correlator) Complete(ctx context.Context, recordID string) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token == "" {
		return
	}

	if err := c.api.CompleteSession(ctx, token, recordID); err != nil {
		metrics.SessionsFailed.WithLabelValues(c.wizard, "complete").Inc()
		c.log.Warn("session completion failed", map[string]interface{}{
			"wizard":     c.wizard,
			"session_id": token,
			"record_id":  recordID,
			"error":      err.Error(),
		})
		return
	}

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if err := c.store.Remove(ctx, StorageKey); err != nil {
		c.log.Warn("failed to clear session token from storage", map[string]interface{}{
			"wizard": c.wizard,
			"error":  err.Error(),
		})
	}

	c.log.Info("session completed", map[string]interface{}{
		"wizard":     c.wizard,
		"session_id": token,
		"record_id":  recordID,
	})
}

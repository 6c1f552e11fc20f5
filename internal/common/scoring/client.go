// Package scoring is the HTTP client for the remote scoring/session service.
// It covers the four calls the intake engine makes: session start, session
// completion, analysis submission and pre-opening submission. All calls are
// plain request/response JSON; no streaming.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ==========================
// Session endpoints
// ==========================

type sessionStartRequest struct {
	CompanyName string `json:"nome_empresa"`
	Email       string `json:"email"`
}

type sessionStartResponse struct {
	SessionID string `json:"sessao_id"`
	Message   string `json:"mensagem"`
}

type sessionCompleteRequest struct {
	AnalysisID string `json:"analise_id"`
}

// CreateSession registers an abandonment-tracking session keyed to the
// identifying fields and returns its opaque id.
func (c *Client) CreateSession(ctx context.Context, companyName, email string) (string, error) {
	var resp sessionStartResponse
	err := c.doJSON(ctx, http.MethodPost, "/sessao/iniciar", sessionStartRequest{
		CompanyName: companyName,
		Email:       email,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("session create returned empty id")
	}
	return resp.SessionID, nil
}

// CompleteSession links the session to the finished analysis record,
// cancelling its abandonment e-mails.
func (c *Client) CompleteSession(ctx context.Context, sessionID, recordID string) error {
	path := fmt.Sprintf("/sessao/%s/concluir", sessionID)
	return c.doJSON(ctx, http.MethodPatch, path, sessionCompleteRequest{AnalysisID: recordID}, nil)
}

// ==========================
// Submission endpoints
// ==========================

// AnalysisResult is the scoring service's response to an analysis
// submission. The engine only needs the record id for routing; the rest is
// rendered by the dashboard.
type AnalysisResult struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// PreOpeningResult carries the derived fields the results view renders.
type PreOpeningResult struct {
	ID                string            `json:"id"`
	BusinessType      string            `json:"tipo_negocio"`
	Sector            string            `json:"setor"`
	SectorLabel       string            `json:"setor_label"`
	State             string            `json:"estado"`
	City              string            `json:"cidade,omitempty"`
	OpeningForecast   string            `json:"previsao_abertura"`
	CapitalComparison CapitalComparison `json:"comparativo_capital"`
	RevenueComparison RevenueComparison `json:"comparativo_faturamento"`
	Alerts            []ResultAlert     `json:"alertas"`
	Checklist30Days   []ChecklistItem   `json:"checklist_30_dias"`
	ContextMessage    string            `json:"mensagem_contexto,omitempty"`
	CreatedAt         string            `json:"created_at"`
}

type CapitalComparison struct {
	Informed      float64 `json:"capital_informado"`
	Recommended   float64 `json:"capital_recomendado"`
	DifferencePct float64 `json:"diferenca_percentual"`
	Status        string  `json:"status"`
}

type RevenueComparison struct {
	Expected      float64 `json:"faturamento_esperado"`
	Reference     float64 `json:"faturamento_referencia"`
	DifferencePct float64 `json:"diferenca_percentual"`
	Status        string  `json:"status"`
}

type ResultAlert struct {
	ID       string `json:"id"`
	Category string `json:"categoria"`
	Severity string `json:"severidade"`
	Title    string `json:"titulo"`
	Text     string `json:"texto"`
}

type ChecklistItem struct {
	Text        string `json:"texto"`
	Conditional bool   `json:"condicional"`
	Condition   string `json:"condicao,omitempty"`
}

// SubmitAnalysis posts the assembled analysis payload and returns the record
// identifier for the results view.
func (c *Client) SubmitAnalysis(ctx context.Context, payload map[string]interface{}) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/analise/nova", payload, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, fmt.Errorf("analysis submission returned empty id")
	}
	return &result, nil
}

// SubmitPreOpening posts the assembled pre-opening payload.
func (c *Client) SubmitPreOpening(ctx context.Context, payload map[string]interface{}) (*PreOpeningResult, error) {
	var result PreOpeningResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/pre-abertura/nova", payload, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, fmt.Errorf("pre-opening submission returned empty id")
	}
	return &result, nil
}

// ==========================
// Transport
// ==========================

type apiError struct {
	Detail string `json:"detail"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Detail != "" {
			return fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, apiErr.Detail)
		}
		return fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// IsTimeout reports whether err came from a timed-out call, either the
// request context expiring or the transport deadline firing.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

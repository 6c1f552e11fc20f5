package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessao/iniciar", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Padaria do Zé", body["nome_empresa"])
		assert.Equal(t, "ze@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]string{
			"sessao_id": "sess-123",
			"mensagem":  "Sessão iniciada com sucesso",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	sessionID, err := client.CreateSession(context.Background(), "Padaria do Zé", "ze@example.com")

	require.NoError(t, err)
	assert.Equal(t, "sess-123", sessionID)
}

func TestCompleteSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/sessao/sess-123/concluir", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "analise-42", body["analise_id"])

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.CompleteSession(context.Background(), "sess-123", "analise-42")
	require.NoError(t, err)
}

func TestSubmitAnalysis(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/analise/nova", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "Padaria do Zé", payload["nome_empresa"])

			json.NewEncoder(w).Encode(map[string]string{"id": "analise-42"})
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		result, err := client.SubmitAnalysis(context.Background(), map[string]interface{}{
			"nome_empresa": "Padaria do Zé",
		})

		require.NoError(t, err)
		assert.Equal(t, "analise-42", result.ID)
	})

	t.Run("surfaces API detail on error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"detail": "receita_atual deve ser positiva"})
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.SubmitAnalysis(context.Background(), map[string]interface{}{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 422")
		assert.Contains(t, err.Error(), "receita_atual deve ser positiva")
	})

	t.Run("rejects empty id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.SubmitAnalysis(context.Background(), map[string]interface{}{})
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.SubmitAnalysis(context.Background(), map[string]interface{}{})
		assert.Error(t, err)
	})
}

func TestSubmitPreOpening(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pre-abertura/nova", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "pre-7",
			"comparativo_capital": map[string]interface{}{
				"capital_informado":    30000,
				"capital_recomendado":  45000,
				"diferenca_percentual": -33.3,
				"status":               "abaixo",
			},
			"alertas": []map[string]string{
				{"id": "capital_baixo", "categoria": "financeiro", "severidade": "atencao", "titulo": "Capital abaixo do recomendado", "texto": "..."},
			},
			"checklist_30_dias": []map[string]interface{}{
				{"texto": "Abrir CNPJ", "condicional": false},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	result, err := client.SubmitPreOpening(context.Background(), map[string]interface{}{})

	require.NoError(t, err)
	assert.Equal(t, "pre-7", result.ID)
	assert.Equal(t, "abaixo", result.CapitalComparison.Status)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, "financeiro", result.Alerts[0].Category)
	require.Len(t, result.Checklist30Days, 1)
}

func TestIsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.SubmitAnalysis(context.Background(), map[string]interface{}{})

	require.Error(t, err)
	assert.True(t, IsTimeout(err))

	assert.False(t, IsTimeout(nil))
	assert.False(t, IsTimeout(context.Canceled))
}

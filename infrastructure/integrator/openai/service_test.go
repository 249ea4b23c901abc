package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	openaidomain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/openai/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/openai/openaiclient"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

func newTestNarrator(t *testing.T, handler http.HandlerFunc) *OpenAINarrator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Narrative: config.Narrative{
			URL:         srv.URL,
			APIKey:      "sk-teste",
			Model:       "gpt-3.5-turbo",
			MaxTokens:   800,
			Temperature: 0.7,
			Timeout:     5 * time.Second,
		},
	}

	return New(cfg, openaiclient.NewClient(cfg, srv.Client()))
}

func testPrompt() *domain.Prompt {
	return &domain.Prompt{System: "Você é um analista.", User: "RESUMO: receita 100"}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected string
		err      error
	}{
		{
			name: "envia o prompt e devolve o texto sem espaços nas bordas",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer sk-teste", r.Header.Get("Authorization"))

				body, _ := io.ReadAll(r.Body)
				var req openaidomain.ChatCompletionRequest
				require.NoError(t, json.Unmarshal(body, &req))
				assert.Equal(t, "gpt-3.5-turbo", req.Model)
				assert.Equal(t, 800, req.MaxTokens)
				require.Len(t, req.Messages, 2)
				assert.Equal(t, "system", req.Messages[0].Role)
				assert.Equal(t, "RESUMO: receita 100", req.Messages[1].Content)

				w.Write([]byte(`{"model":"gpt-3.5-turbo","choices":[{"message":{"role":"assistant","content":"  A receita cresceu.\n"},"finish_reason":"stop"}],"usage":{"total_tokens":42}}`))
			},
			expected: "A receita cresceu.",
		},
		{
			name: "texto vazio é rejeitado",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"   "}}]}`))
			},
			err: domain.ErrEmptyNarrative,
		},
		{
			name: "sem escolhas é rejeitado",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[]}`))
			},
			err: domain.ErrEmptyNarrative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrator := newTestNarrator(t, tt.handler)

			text, err := narrator.Complete(context.Background(), testPrompt())
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestComplete_APIErrorIsNotRetried(t *testing.T) {
	calls := 0
	narrator := newTestNarrator(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	})

	_, err := narrator.Complete(context.Background(), testPrompt())

	var apiErr *openaiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Rate limit reached", apiErr.Message)
	assert.Equal(t, 1, calls)
}

func TestComplete_LimiterRespectsContext(t *testing.T) {
	narrator := newTestNarrator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})
	narrator.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	// Consome o único token disponível
	_, err := narrator.Complete(context.Background(), testPrompt())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = narrator.Complete(ctx, testPrompt())
	assert.Error(t, err)
}

func TestModel(t *testing.T) {
	narrator := newTestNarrator(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, "gpt-3.5-turbo", narrator.Model())
}

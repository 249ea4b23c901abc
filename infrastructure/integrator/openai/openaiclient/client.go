package openaiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	openaidomain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/openai/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
)

type Client interface {
	ChatCompletion(ctx context.Context, req *openaidomain.ChatCompletionRequest) (*openaidomain.ChatCompletionResponse, error)
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type OpenAIClient struct {
	url        string
	apiKey     string
	httpClient HTTPDoer
}

func NewClient(cfg *config.Config, httpClient HTTPDoer) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Narrative.Timeout}
	}
	return &OpenAIClient{
		url:        cfg.Narrative.URL,
		apiKey:     cfg.Narrative.APIKey,
		httpClient: httpClient,
	}
}

// APIError é a recusa do serviço de narrativa com o status HTTP original.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("serviço de narrativa respondeu %d: %s", e.StatusCode, e.Message)
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, req *openaidomain.ChatCompletionRequest) (*openaidomain.ChatCompletionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o prompt: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição de narrativa: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar o serviço de narrativa: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta de narrativa: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody openaidomain.ErrorBody
		_ = json.Unmarshal(body, &errBody)

		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"type":   errBody.Error.Type,
		}).Warn("openai: requisição recusada")

		return nil, &APIError{StatusCode: resp.StatusCode, Message: errBody.Error.Message}
	}

	var response openaidomain.ChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("resposta de narrativa em formato inesperado: %w", err)
	}

	return &response, nil
}

package openai

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	openaidomain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/openai/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/openai/openaiclient"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// OpenAINarrator gera a narrativa a partir do prompt formatado. Não há novas tentativas; o
// limitador só espaça as chamadas.
type OpenAINarrator struct {
	Client      openaiclient.Client
	model       string
	maxTokens   int
	temperature float64
	limiter     *rate.Limiter
}

func New(cfg *config.Config, client openaiclient.Client) *OpenAINarrator {
	limit := rate.Inf
	if cfg.Narrative.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.Narrative.RatePerMinute))
	}

	return &OpenAINarrator{
		Client:      client,
		model:       cfg.Narrative.Model,
		maxTokens:   cfg.Narrative.MaxTokens,
		temperature: cfg.Narrative.Temperature,
		limiter:     rate.NewLimiter(limit, 1),
	}
}

func (n *OpenAINarrator) Model() string {
	return n.model
}

func (n *OpenAINarrator) Complete(ctx context.Context, prompt *domain.Prompt) (string, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req := &openaidomain.ChatCompletionRequest{
		Model: n.model,
		Messages: []openaidomain.Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens:   n.maxTokens,
		Temperature: n.temperature,
	}

	resp, err := n.Client.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyNarrative
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", domain.ErrEmptyNarrative
	}

	logrus.WithFields(logrus.Fields{
		"model":         resp.Model,
		"total_tokens":  resp.Usage.TotalTokens,
		"finish_reason": resp.Choices[0].FinishReason,
	}).Debug("openai: narrativa gerada")

	return text, nil
}

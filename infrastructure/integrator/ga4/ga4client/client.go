package ga4client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/google/apierror"
	ga4domain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/ga4/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

type Client interface {
	RunReport(ctx context.Context, accessToken, propertyID string, req *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error)
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type GA4Client struct {
	baseURL    string
	version    string
	httpClient HTTPDoer
}

func NewClient(cfg *config.Config, httpClient HTTPDoer) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GA4Client{
		baseURL:    cfg.GA4.BaseURL,
		version:    cfg.GA4.Version,
		httpClient: httpClient,
	}
}

// RunReport executa a consulta na propriedade. Erros HTTP voltam classificados; o cabeçalho
// login-customer-id nunca é enviado ao GA4.
func (c *GA4Client) RunReport(ctx context.Context, accessToken, propertyID string, req *ga4domain.RunReportRequest) (*ga4domain.RunReportResponse, error) {
	url := fmt.Sprintf("%s/%s/properties/%s:runReport", c.baseURL, c.version, propertyID)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewReportError(domain.KindUnknown, "erro ao serializar a consulta GA4", err).WithSource(domain.SourceGA4)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("ga4: erro ao criar a requisição")
		return nil, domain.NewReportError(domain.KindUnknown, "erro ao criar a requisição GA4", err).WithSource(domain.SourceGA4)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, domain.NewTransientError("consulta GA4 interrompida", ctxErr).WithSource(domain.SourceGA4)
		}
		return nil, domain.NewTransientError("erro de rede na consulta GA4", err).WithSource(domain.SourceGA4)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransientError("erro ao ler a resposta do GA4", err).WithSource(domain.SourceGA4)
	}

	if resp.StatusCode != http.StatusOK {
		re := apierror.Classify(domain.SourceGA4, resp.StatusCode, body, propertyID)
		logrus.WithFields(logrus.Fields{
			"property_id": propertyID,
			"status":      resp.StatusCode,
			"kind":        re.Kind,
		}).Warn("ga4: consulta recusada")
		return nil, re
	}

	var response ga4domain.RunReportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("ga4: erro ao decodificar JSON")
		return nil, domain.NewReportError(domain.KindUnknown, "resposta do GA4 em formato inesperado", err).WithSource(domain.SourceGA4)
	}

	return &response, nil
}

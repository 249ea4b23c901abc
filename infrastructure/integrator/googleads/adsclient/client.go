package adsclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/google/apierror"
	adsdomain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/googleads/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

type Client interface {
	Search(ctx context.Context, accessToken string, account *domain.AccountContext, req *adsdomain.SearchRequest) (*adsdomain.SearchResponse, error)
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type AdsClient struct {
	baseURL    string
	version    string
	httpClient HTTPDoer
}

func NewClient(cfg *config.Config, httpClient HTTPDoer) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &AdsClient{
		baseURL:    cfg.GoogleAds.BaseURL,
		version:    cfg.GoogleAds.Version,
		httpClient: httpClient,
	}
}

// Search envia uma página da consulta GAQL. O cabeçalho login-customer-id só é enviado
// quando a loja acessa a conta por uma conta gerenciadora.
func (c *AdsClient) Search(ctx context.Context, accessToken string, account *domain.AccountContext, req *adsdomain.SearchRequest) (*adsdomain.SearchResponse, error) {
	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:search", c.baseURL, c.version, account.CustomerID)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewReportError(domain.KindUnknown, "erro ao serializar a consulta GAQL", err).WithSource(domain.SourceAds)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("googleads: erro ao criar a requisição")
		return nil, domain.NewReportError(domain.KindUnknown, "erro ao criar a requisição do Google Ads", err).WithSource(domain.SourceAds)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("developer-token", account.DeveloperToken)
	httpReq.Header.Set("Content-Type", "application/json")
	if account.LoginCustomerID != "" {
		httpReq.Header.Set("login-customer-id", account.LoginCustomerID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, domain.NewTransientError("consulta do Google Ads interrompida", ctxErr).WithSource(domain.SourceAds)
		}
		return nil, domain.NewTransientError("erro de rede na consulta do Google Ads", err).WithSource(domain.SourceAds)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransientError("erro ao ler a resposta do Google Ads", err).WithSource(domain.SourceAds)
	}

	if resp.StatusCode != http.StatusOK {
		re := apierror.Classify(domain.SourceAds, resp.StatusCode, body, account.CustomerID)
		logrus.WithFields(logrus.Fields{
			"customer_id":       account.CustomerID,
			"login_customer_id": account.LoginCustomerID,
			"status":            resp.StatusCode,
			"kind":              re.Kind,
		}).Warn("googleads: consulta recusada")
		return nil, re
	}

	var response adsdomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("googleads: erro ao decodificar JSON")
		return nil, domain.NewReportError(domain.KindUnknown, "resposta do Google Ads em formato inesperado", err).WithSource(domain.SourceAds)
	}

	return &response, nil
}

package googleads

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/googleads/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/utils"
)

// Limite de páginas por consulta para não seguir nextPageToken indefinidamente
const maxPages = 50

type AdsIntegrator struct {
	Client       adsclient.Client
	defaultLimit int
}

func New(cfg *config.Config, client adsclient.Client) *AdsIntegrator {
	return &AdsIntegrator{
		Client:       client,
		defaultLimit: cfg.GoogleAds.DefaultRowLimit,
	}
}

func (s *AdsIntegrator) Source() domain.Source {
	return domain.SourceAds
}

// Query executa a consulta GAQL paginada e converte os resultados para os nomes normalizados.
// cost_micros é convertido para unidades da moeda.
func (s *AdsIntegrator) Query(ctx context.Context, q *domain.BackendQuery) ([]domain.MetricRow, error) {
	if q.Account == nil || q.Account.CustomerID == "" {
		return nil, domain.NewValidationError("customer_id", domain.CodeMissingField,
			"conta do Google Ads não informada").WithSource(domain.SourceAds)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	bounded := *q
	bounded.Limit = limit
	req := &adsdomain.SearchRequest{Query: BuildQuery(&bounded)}

	logrus.WithFields(logrus.Fields{
		"customer_id": q.Account.CustomerID,
		"query":       req.Query,
	}).Debug("googleads: executando consulta")

	rows := make([]domain.MetricRow, 0)
	for page := 0; page < maxPages; page++ {
		resp, err := s.Client.Search(ctx, q.AccessToken, q.Account, req)
		if err != nil {
			return nil, err
		}

		for _, result := range resp.Results {
			row, err := FactoryMetricRow(q, result)
			if err != nil {
				logrus.WithError(err).Warn("googleads: resultado ignorado")
				continue
			}
			rows = append(rows, row)
		}

		if resp.NextPageToken == "" || (limit > 0 && len(rows) >= limit) {
			break
		}
		req.PageToken = resp.NextPageToken
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return rows, nil
}

func FactoryMetricRow(q *domain.BackendQuery, result map[string]any) (domain.MetricRow, error) {
	row := domain.MetricRow{
		Source:     domain.SourceAds,
		Dimensions: make(map[string]string, len(q.Dimensions)),
		Metrics:    make(map[string]float64, len(q.Metrics)),
	}

	for _, d := range q.Dimensions {
		field := domain.Dimensions[d].NameFor(domain.SourceAds, false)
		value, ok := lookup(result, jsonPath(field))
		if !ok {
			return row, fmt.Errorf("dimensão %s ausente no resultado", field)
		}
		row.Dimensions[d] = stringValue(value)
	}

	for _, m := range q.Metrics {
		mapping := domain.Metrics[m]
		field := mapping.NameFor(domain.SourceAds, false)

		// A API omite métricas zeradas
		value, ok := lookup(result, jsonPath(field))
		if !ok {
			row.Metrics[m] = 0
			continue
		}

		number, err := numberValue(value)
		if err != nil {
			return row, fmt.Errorf("métrica %s: %w", field, err)
		}
		if mapping.Micros {
			number = utils.MicrosToUnits(number)
		}
		row.Metrics[m] = number
	}

	return row, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// int64 chega como string no JSON da API; double chega como número.
func numberValue(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		return strconv.ParseFloat(t, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("tipo inesperado %T", v)
	}
}

package ga4

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	ga4domain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/ga4/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/ga4/ga4client"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

const ga4DateLayout = "20060102"

type GA4Integrator struct {
	Client ga4client.Client
}

func New(client ga4client.Client) *GA4Integrator {
	return &GA4Integrator{Client: client}
}

func (s *GA4Integrator) Source() domain.Source {
	return domain.SourceGA4
}

// Query traduz os nomes normalizados para a GA4 Data API e devolve as linhas com os nomes
// normalizados de volta. Datas "20240101" viram "2024-01-01".
func (s *GA4Integrator) Query(ctx context.Context, q *domain.BackendQuery) ([]domain.MetricRow, error) {
	if q.Account == nil || q.Account.PropertyID == "" {
		return nil, domain.NewValidationError("ga4_property_id", domain.CodeMissingField,
			"loja sem propriedade GA4 configurada").WithSource(domain.SourceGA4)
	}

	itemScoped := domain.HasItemDimension(q.Dimensions)
	req := BuildRunReportRequest(q, itemScoped)

	resp, err := s.Client.RunReport(ctx, q.AccessToken, q.Account.PropertyID, req)
	if err != nil {
		return nil, err
	}

	rows := FactoryMetricRows(q, resp)

	logrus.WithFields(logrus.Fields{
		"property_id": q.Account.PropertyID,
		"rows":        len(rows),
		"row_count":   resp.RowCount,
	}).Debug("ga4: relatório recebido")

	return rows, nil
}

func BuildRunReportRequest(q *domain.BackendQuery, itemScoped bool) *ga4domain.RunReportRequest {
	req := &ga4domain.RunReportRequest{
		DateRanges: []ga4domain.DateRange{{
			StartDate: q.DateRange.StartString(),
			EndDate:   q.DateRange.EndString(),
		}},
		Dimensions: make([]ga4domain.Dimension, 0, len(q.Dimensions)),
		Metrics:    make([]ga4domain.Metric, 0, len(q.Metrics)),
	}

	for _, d := range q.Dimensions {
		req.Dimensions = append(req.Dimensions, ga4domain.Dimension{Name: domain.Dimensions[d].NameFor(domain.SourceGA4, itemScoped)})
	}
	for _, m := range q.Metrics {
		req.Metrics = append(req.Metrics, ga4domain.Metric{Name: domain.Metrics[m].NameFor(domain.SourceGA4, itemScoped)})
	}
	if q.Limit > 0 {
		req.Limit = strconv.Itoa(q.Limit)
	}

	return req
}

// FactoryMetricRows lê os valores por posição, na mesma ordem das listas enviadas.
func FactoryMetricRows(q *domain.BackendQuery, resp *ga4domain.RunReportResponse) []domain.MetricRow {
	rows := make([]domain.MetricRow, 0, len(resp.Rows))

	for _, r := range resp.Rows {
		row := domain.MetricRow{
			Source:     domain.SourceGA4,
			Dimensions: make(map[string]string, len(q.Dimensions)),
			Metrics:    make(map[string]float64, len(q.Metrics)),
		}

		for i, d := range q.Dimensions {
			if i >= len(r.DimensionValues) {
				break
			}
			value := r.DimensionValues[i].Value
			if d == "date" {
				value = normalizeDate(value)
			}
			row.Dimensions[d] = value
		}

		for i, m := range q.Metrics {
			if i >= len(r.MetricValues) {
				break
			}
			value, err := strconv.ParseFloat(r.MetricValues[i].Value, 64)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"metric": m,
					"value":  r.MetricValues[i].Value,
				}).Warn("ga4: valor de métrica não numérico, célula fica ausente")
				continue
			}
			row.Metrics[m] = value
		}

		rows = append(rows, row)
	}

	return rows
}

func normalizeDate(value string) string {
	t, err := time.Parse(ga4DateLayout, value)
	if err != nil {
		return value
	}
	return t.Format(domain.DateLayout)
}

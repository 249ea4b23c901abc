package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportRequest(t *testing.T) {
	valid := func() *ReportRequest {
		return &ReportRequest{
			StoreID:    "loja01",
			Source:     SourceBoth,
			DateRange:  NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)),
			Dimensions: []string{"date", "campaign_id"},
			Metrics:    []string{"clicks", "sessions"},
		}
	}

	tests := []struct {
		name   string
		mutate func(r *ReportRequest)
		field  string
		code   string
	}{
		{name: "requisição válida", mutate: func(r *ReportRequest) {}},
		{name: "intervalo de exatamente 365 dias", mutate: func(r *ReportRequest) {
			r.DateRange = NewDateRange(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
		}},
		{name: "sem loja", mutate: func(r *ReportRequest) { r.StoreID = "" }, field: "store_id", code: CodeMissingField},
		{name: "fonte desconhecida", mutate: func(r *ReportRequest) { r.Source = "bing" }, field: "source", code: CodeInvalidSource},
		{name: "sem datas", mutate: func(r *ReportRequest) { r.DateRange = DateRange{} }, field: "date_range", code: CodeInvalidDateRange},
		{name: "366 dias", mutate: func(r *ReportRequest) {
			r.DateRange = NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
		}, field: "date_range", code: CodeInvalidDateRange},
		{name: "dimensão repetida", mutate: func(r *ReportRequest) { r.Dimensions = []string{"date", "date"} }, field: "dimensions", code: CodeUnknownDimension},
		{name: "métrica só do GA4 em fonte ads", mutate: func(r *ReportRequest) { r.Source = SourceAds }, field: "metrics", code: CodeUnknownMetric},
		{name: "métrica de uma só fonte em consulta combinada", mutate: func(r *ReportRequest) { r.Metrics = []string{"sessions"} }},
		{name: "limit negativo", mutate: func(r *ReportRequest) { r.Limit = -1 }, field: "limit", code: CodeMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			re := ValidateReportRequest(req, 365)
			if tt.field == "" {
				assert.Nil(t, re)
				return
			}

			require.NotNil(t, re)
			assert.Equal(t, KindValidation, re.Kind)
			assert.Equal(t, tt.field, re.Field)
			assert.Equal(t, tt.code, re.Code)
		})
	}
}

func TestMetricsFor(t *testing.T) {
	metrics := []string{"revenue", "sessions", "cost", "page_views"}

	assert.Equal(t, metrics, MetricsFor(SourceGA4, metrics))
	assert.Equal(t, []string{"revenue", "cost"}, MetricsFor(SourceAds, metrics))
}

func TestFieldMapping_NameFor(t *testing.T) {
	assert.Equal(t, "itemRevenue", Metrics["revenue"].NameFor(SourceGA4, true))
	assert.Equal(t, "totalRevenue", Metrics["revenue"].NameFor(SourceGA4, false))
	assert.Equal(t, "metrics.conversions_value", Metrics["revenue"].NameFor(SourceAds, true))
	assert.Empty(t, Dimensions["page_title"].NameFor(SourceAds, false))
}

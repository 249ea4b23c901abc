package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/reporting/mocks"
)

func revenueRow(name string, ga4, ads float64, adsPresent bool) *domain.MergedRow {
	adsCell := domain.AbsentCell()
	if adsPresent {
		adsCell = domain.Cell{Value: ads}
	}
	return &domain.MergedRow{
		Dimensions: map[string]string{"product_name": name},
		Values: map[domain.Source]map[string]domain.Cell{
			domain.SourceGA4: {"revenue": {Value: ga4}},
			domain.SourceAds: {"revenue": adsCell},
		},
	}
}

func TestGetTopProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockReporter := mocks.NewMockReporter(ctrl)
	service := NewStoreRankingService(mockReporter)

	dr := domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		kind     domain.RankingKind
		source   domain.Source
		limit    int
		setup    func()
		validate func(t *testing.T, resp *domain.RankingResponse, err error)
	}{
		{
			name: "top receita ordena 80, 50, 30",
			kind: domain.RankingRevenue,
			setup: func() {
				mockReporter.EXPECT().Execute(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *domain.ReportRequest) (*domain.Report, error) {
						assert.Equal(t, domain.SourceBoth, req.Source)
						assert.Equal(t, []string{"product_name"}, req.Dimensions)
						assert.Equal(t, "revenue", req.Metrics[0])
						return &domain.Report{
							Rows: []*domain.MergedRow{
								revenueRow("Caneca", 50, 5, true),
								revenueRow("Boné", 30, 0, false),
								revenueRow("Camiseta", 80, 0, false),
							},
							Partial: true,
						}, nil
					})
			},
			validate: func(t *testing.T, resp *domain.RankingResponse, err error) {
				require.NoError(t, err)
				require.Len(t, resp.Items, 3)
				assert.Equal(t, "Camiseta", resp.Items[0].Dimensions["product_name"])
				assert.Equal(t, "Caneca", resp.Items[1].Dimensions["product_name"])
				assert.Equal(t, "Boné", resp.Items[2].Dimensions["product_name"])
				assert.Equal(t, 1, resp.Items[0].Position)
				assert.True(t, resp.Partial)
			},
		},
		{
			name:  "limite aplicado",
			kind:  domain.RankingRevenue,
			limit: 1,
			setup: func() {
				mockReporter.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(&domain.Report{
					Rows: []*domain.MergedRow{revenueRow("A", 1, 0, false), revenueRow("B", 2, 0, false)},
				}, nil)
			},
			validate: func(t *testing.T, resp *domain.RankingResponse, err error) {
				require.NoError(t, err)
				require.Len(t, resp.Items, 1)
				assert.Equal(t, "B", resp.Items[0].Dimensions["product_name"])
			},
		},
		{
			name:   "fonte informada substitui a padrão",
			kind:   domain.RankingSales,
			source: domain.SourceGA4,
			setup: func() {
				mockReporter.EXPECT().Execute(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *domain.ReportRequest) (*domain.Report, error) {
						assert.Equal(t, domain.SourceGA4, req.Source)
						assert.Equal(t, "items_purchased", req.Metrics[0])
						return &domain.Report{}, nil
					})
			},
			validate: func(t *testing.T, resp *domain.RankingResponse, err error) {
				require.NoError(t, err)
				assert.Empty(t, resp.Items)
			},
		},
		{
			name:  "ranking desconhecido",
			kind:  "lucro",
			setup: func() {},
			validate: func(t *testing.T, resp *domain.RankingResponse, err error) {
				assert.Nil(t, resp)
				assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			resp, err := service.GetTopProducts(context.Background(), "loja01", tt.kind, dr, tt.source, tt.limit)
			tt.validate(t, resp, err)
		})
	}
}

func namedRow(key, name string, metrics map[string]float64) *domain.MergedRow {
	cells := make(map[string]domain.Cell, len(metrics))
	for k, v := range metrics {
		cells[k] = domain.Cell{Value: v}
	}
	return &domain.MergedRow{
		Dimensions: map[string]string{key: name},
		Values:     map[domain.Source]map[string]domain.Cell{domain.SourceGA4: cells},
	}
}

func TestGetTopProducts_Combined(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockReporter := mocks.NewMockReporter(ctrl)
	service := NewStoreRankingService(mockReporter)

	dr := domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	generated := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	mockReporter.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.ReportRequest) (*domain.Report, error) {
			switch req.Metrics[0] {
			case "revenue":
				assert.Equal(t, domain.SourceAds, req.Source, "fonte informada vale para as listas de produto")
				return &domain.Report{
					Rows: []*domain.MergedRow{
						namedRow("product_name", "Caneca", map[string]float64{"revenue": 500, "items_purchased": 50}),
						namedRow("product_name", "Camiseta", map[string]float64{"revenue": 900, "items_purchased": 30}),
					},
					Sources:     map[domain.Source]*domain.SourceStatus{domain.SourceAds: {Source: domain.SourceAds, State: domain.SourceStateOK}},
					GeneratedAt: generated,
				}, nil
			case "items_purchased":
				assert.Equal(t, domain.SourceAds, req.Source)
				return &domain.Report{
					Rows: []*domain.MergedRow{
						namedRow("product_name", "Caneca", map[string]float64{"revenue": 500, "items_purchased": 50}),
						namedRow("product_name", "Camiseta", map[string]float64{"revenue": 900, "items_purchased": 30}),
					},
					Partial: true,
				}, nil
			default:
				assert.Equal(t, domain.SourceGA4, req.Source, "views sempre vem do GA4")
				assert.Equal(t, []string{"page_title"}, req.Dimensions)
				return &domain.Report{
					Rows: []*domain.MergedRow{namedRow("page_title", "Camiseta", map[string]float64{"page_views": 3000})},
					Sources: map[domain.Source]*domain.SourceStatus{
						domain.SourceGA4: {Source: domain.SourceGA4, State: domain.SourceStateOK},
					},
				}, nil
			}
		}).Times(3)

	resp, err := service.GetTopProducts(context.Background(), "loja01", domain.RankingCombined, dr, domain.SourceAds, 0)
	require.NoError(t, err)

	assert.Equal(t, domain.RankingCombined, resp.Kind)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Partial)
	assert.Equal(t, generated, resp.GeneratedAt)
	assert.Contains(t, resp.Sources, domain.SourceAds)
	assert.Contains(t, resp.Sources, domain.SourceGA4)

	require.NotNil(t, resp.Combined)
	require.Len(t, resp.Combined.Products, 2)
	// receita 10 + vendas 9 + views 10 contra receita 9 + vendas 10
	assert.Equal(t, "Camiseta", resp.Combined.Products[0].Name)
	assert.Equal(t, 29, resp.Combined.Products[0].Score)
	assert.Equal(t, 1, resp.Combined.Products[0].RevenueRank)
	assert.Equal(t, 19, resp.Combined.Products[1].Score)
	assert.Equal(t, []string{"Camiseta"}, resp.Combined.Overlap.AllThree)
	assert.InDelta(t, 100.0, resp.Combined.Overlap.Rate, 0.001)
}

func TestGetTopProducts_CombinedFalhaEmUmaLista(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockReporter := mocks.NewMockReporter(ctrl)
	service := NewStoreRankingService(mockReporter)

	dr := domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))

	mockReporter.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.ReportRequest) (*domain.Report, error) {
			if req.Metrics[0] == "page_views" {
				return nil, domain.NewPermissionDeniedError("", "sem acesso à propriedade", nil).WithSource(domain.SourceGA4)
			}
			return &domain.Report{}, nil
		}).AnyTimes()

	resp, err := service.GetTopProducts(context.Background(), "loja01", domain.RankingCombined, dr, "", 0)
	assert.Nil(t, resp)
	assert.Equal(t, domain.KindPermissionDenied, domain.KindOf(err))
}

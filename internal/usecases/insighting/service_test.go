package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/insighting/mocks"
	reportingmocks "github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/reporting/mocks"
)

func TestInsights(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockReporter := reportingmocks.NewMockReporter(ctrl)
	mockProfiles := mocks.NewMockProfileReader(ctrl)
	mockNarrator := mocks.NewMockNarrator(ctrl)

	cfg := &config.Config{Narrative: config.Narrative{TopRows: 20, Language: "português"}}
	service := NewService(cfg, mockReporter, mockProfiles, mockNarrator)

	req := productReport(1).Request

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, resp *domain.InsightResponse, err error)
	}{
		{
			name: "narrativa gerada sobre o relatório",
			setup: func() {
				mockReporter.EXPECT().Execute(gomock.Any(), req).Return(productReport(3), nil)
				mockProfiles.EXPECT().GetProfile(gomock.Any(), "loja01").Return(&domain.StoreProfile{Name: "Loja Azul"}, nil)
				mockNarrator.EXPECT().Complete(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *domain.Prompt) (string, error) {
						assert.Contains(t, p.System, "Loja Azul")
						return "  Produto 02 lidera as vendas.  ", nil
					})
				mockNarrator.EXPECT().Model().Return("gpt-4o")
			},
			validate: func(t *testing.T, resp *domain.InsightResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Produto 02 lidera as vendas.", resp.Narrative)
				assert.Equal(t, "gpt-4o", resp.Model)
				assert.Len(t, resp.Report.Rows, 3)
			},
		},
		{
			name: "texto vazio é erro",
			setup: func() {
				mockReporter.EXPECT().Execute(gomock.Any(), req).Return(productReport(1), nil)
				mockProfiles.EXPECT().GetProfile(gomock.Any(), "loja01").Return(nil, domain.ErrStoreNotFound)
				mockNarrator.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("   ", nil)
			},
			validate: func(t *testing.T, resp *domain.InsightResponse, err error) {
				assert.Nil(t, resp)
				assert.ErrorIs(t, err, domain.ErrEmptyNarrative)
			},
		},
		{
			name: "todas as fontes falharam não chama a narrativa",
			setup: func() {
				mockReporter.EXPECT().Execute(gomock.Any(), req).
					Return(productReport(0), domain.ErrAllSourcesFailed)
			},
			validate: func(t *testing.T, resp *domain.InsightResponse, err error) {
				assert.Nil(t, resp)
				assert.ErrorIs(t, err, domain.ErrAllSourcesFailed)
			},
		},
		{
			name: "erro do serviço de narrativa",
			setup: func() {
				mockReporter.EXPECT().Execute(gomock.Any(), req).Return(productReport(1), nil)
				mockProfiles.EXPECT().GetProfile(gomock.Any(), "loja01").Return(&domain.StoreProfile{Name: "Loja Azul"}, nil)
				mockNarrator.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("401 invalid api key"))
			},
			validate: func(t *testing.T, resp *domain.InsightResponse, err error) {
				assert.Nil(t, resp)
				assert.ErrorContains(t, err, "invalid api key")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			resp, err := service.Insights(context.Background(), req)
			tt.validate(t, resp, err)
		})
	}
}

func TestAnalyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockReporter := reportingmocks.NewMockReporter(ctrl)

	service := NewService(&config.Config{}, mockReporter, nil, nil)
	dr := domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	mockReporter.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.ReportRequest) (*domain.Report, error) {
			assert.Equal(t, domain.SourceBoth, req.Source)
			assert.Equal(t, []string{"date"}, req.Dimensions)
			assert.Equal(t, domain.AnalysisMetrics, req.Metrics)

			return &domain.Report{
				StoreID: "loja01",
				Request: req,
				Rows: []*domain.MergedRow{
					{
						Dimensions: map[string]string{"date": "2024-01-01"},
						Values: map[domain.Source]map[string]domain.Cell{
							domain.SourceGA4: {"revenue": {Value: 500}, "transactions": {Value: 5}, "sessions": {Value: 100}},
							domain.SourceAds: {"cost": {Value: 100}, "clicks": {Value: 50}, "impressions": {Value: 1000}},
						},
					},
				},
				Sources: map[domain.Source]*domain.SourceStatus{
					domain.SourceGA4: {State: domain.SourceStateOK},
					domain.SourceAds: {State: domain.SourceStateOK},
				},
			}, nil
		})

	analysis, err := service.Analyze(context.Background(), "loja01", dr)
	require.NoError(t, err)
	require.NotNil(t, analysis.Combined)
	assert.Equal(t, 5.0, analysis.Combined.ROAS)
	assert.Equal(t, 20.0, analysis.Combined.CostPerConversion)
	assert.Equal(t, 10.0, analysis.Combined.ConversionRateFromAds)
}

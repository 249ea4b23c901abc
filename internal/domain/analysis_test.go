package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAnalysis(t *testing.T) {
	rows := []*MergedRow{
		{
			Dimensions: map[string]string{"date": "2024-01-01"},
			Values: map[Source]map[string]Cell{
				SourceGA4: {"users": {Value: 80}, "sessions": {Value: 100}, "page_views": {Value: 250}, "transactions": {Value: 4}, "revenue": {Value: 400}},
				SourceAds: {"impressions": {Value: 10000}, "clicks": {Value: 200}, "cost": {Value: 150}, "conversions": {Value: 3}},
			},
		},
		{
			Dimensions: map[string]string{"date": "2024-01-02"},
			Values: map[Source]map[string]Cell{
				SourceGA4: {"users": {Value: 20}, "sessions": {Value: 100}, "page_views": {Value: 150}, "transactions": {Value: 1}, "revenue": {Value: 100}},
				SourceAds: {"impressions": AbsentCell(), "clicks": AbsentCell(), "cost": AbsentCell(), "conversions": AbsentCell()},
			},
		},
	}

	tests := []struct {
		name     string
		sources  map[Source]*SourceStatus
		validate func(t *testing.T, a *Analysis)
	}{
		{
			name: "duas fontes com métricas combinadas",
			sources: map[Source]*SourceStatus{
				SourceGA4: {State: SourceStateOK},
				SourceAds: {State: SourceStateOK},
			},
			validate: func(t *testing.T, a *Analysis) {
				require.NotNil(t, a.GA4)
				require.NotNil(t, a.Ads)
				require.NotNil(t, a.Combined)

				assert.Equal(t, 200.0, a.GA4.Sessions)
				assert.Equal(t, 500.0, a.GA4.Revenue)
				assert.Equal(t, 2.0, a.GA4.PagesPerSession)
				assert.Equal(t, 2.5, a.GA4.ConversionRate)

				assert.Equal(t, 2.0, a.Ads.CTR)
				assert.Equal(t, 0.75, a.Ads.CPC)
				assert.Equal(t, 15.0, a.Ads.CPM)

				assert.Equal(t, 3.33, a.Combined.ROAS)
				assert.Equal(t, 30.0, a.Combined.CostPerConversion)
				assert.Equal(t, 2.5, a.Combined.ConversionRateFromAds)
			},
		},
		{
			name: "Ads com falha não gera métricas combinadas",
			sources: map[Source]*SourceStatus{
				SourceGA4: {State: SourceStateOK},
				SourceAds: {State: SourceStateFailed},
			},
			validate: func(t *testing.T, a *Analysis) {
				assert.NotNil(t, a.GA4)
				assert.Nil(t, a.Ads)
				assert.Nil(t, a.Combined)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{StoreID: "loja01", Rows: rows, Sources: tt.sources}
			tt.validate(t, CalculateAnalysis(report))
		})
	}
}

package domain

import (
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/utils"
)

type GA4Totals struct {
	Users           float64 `json:"total_users"`
	Sessions        float64 `json:"total_sessions"`
	PageViews       float64 `json:"total_page_views"`
	Transactions    float64 `json:"total_transactions"`
	Revenue         float64 `json:"total_revenue"`
	PagesPerSession float64 `json:"pages_per_session"`
	ConversionRate  float64 `json:"conversion_rate"`
}

type AdsTotals struct {
	Impressions float64 `json:"total_impressions"`
	Clicks      float64 `json:"total_clicks"`
	Cost        float64 `json:"total_cost"`
	Conversions float64 `json:"total_conversions"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	CPM         float64 `json:"cpm"`
}

type CombinedMetrics struct {
	ROAS                  float64 `json:"roas"`
	CostPerConversion     float64 `json:"cost_per_conversion"`
	ConversionRateFromAds float64 `json:"conversion_rate_from_ads"`
}

// Analysis agrega um relatório mesclado. Blocos nulos indicam fonte sem sucesso.
type Analysis struct {
	StoreID   string           `json:"store_id"`
	DateRange DateRange        `json:"date_range"`
	GA4       *GA4Totals       `json:"ga4,omitempty"`
	Ads       *AdsTotals       `json:"ads,omitempty"`
	Combined  *CombinedMetrics `json:"combined,omitempty"`
	Partial   bool             `json:"partial"`
}

// AnalysisMetrics são as métricas pedidas para montar a análise combinada.
var AnalysisMetrics = []string{
	"revenue", "sessions", "users", "page_views", "transactions",
	"impressions", "clicks", "cost", "conversions",
}

// CalculateAnalysis calcula totais por fonte e as métricas cruzadas (ROAS, custo por conversão).
func CalculateAnalysis(report *Report) *Analysis {
	analysis := &Analysis{
		StoreID: report.StoreID,
		Partial: report.Partial,
	}
	if report.Request != nil {
		analysis.DateRange = report.Request.DateRange
	}

	sum := func(source Source, metric string) float64 {
		total, _ := Sum(report.Rows, source, metric)
		return total
	}

	if report.Succeeded(SourceGA4) {
		ga4 := &GA4Totals{
			Users:        sum(SourceGA4, "users"),
			Sessions:     sum(SourceGA4, "sessions"),
			PageViews:    sum(SourceGA4, "page_views"),
			Transactions: sum(SourceGA4, "transactions"),
			Revenue:      sum(SourceGA4, "revenue"),
		}
		if ga4.Sessions > 0 {
			ga4.PagesPerSession = utils.RoundWithTwoDecimalPlace(ga4.PageViews / ga4.Sessions)
			ga4.ConversionRate = utils.RoundWithTwoDecimalPlace(ga4.Transactions / ga4.Sessions * 100)
		}
		analysis.GA4 = ga4
	}

	if report.Succeeded(SourceAds) {
		ads := &AdsTotals{
			Impressions: sum(SourceAds, "impressions"),
			Clicks:      sum(SourceAds, "clicks"),
			Cost:        utils.RoundWithTwoDecimalPlace(sum(SourceAds, "cost")),
			Conversions: sum(SourceAds, "conversions"),
		}
		if ads.Impressions > 0 {
			ads.CTR = utils.RoundWithTwoDecimalPlace(ads.Clicks / ads.Impressions * 100)
			ads.CPM = utils.RoundWithTwoDecimalPlace(ads.Cost / ads.Impressions * 1000)
		}
		if ads.Clicks > 0 {
			ads.CPC = utils.RoundWithTwoDecimalPlace(ads.Cost / ads.Clicks)
		}
		analysis.Ads = ads
	}

	if analysis.GA4 != nil && analysis.Ads != nil {
		combined := &CombinedMetrics{}
		if analysis.Ads.Cost > 0 {
			combined.ROAS = utils.RoundWithTwoDecimalPlace(analysis.GA4.Revenue / analysis.Ads.Cost)
		}
		if analysis.GA4.Transactions > 0 {
			combined.CostPerConversion = utils.RoundWithTwoDecimalPlace(analysis.Ads.Cost / analysis.GA4.Transactions)
		}
		if analysis.Ads.Clicks > 0 {
			combined.ConversionRateFromAds = utils.RoundWithTwoDecimalPlace(analysis.GA4.Transactions / analysis.Ads.Clicks * 100)
		}
		analysis.Combined = combined
	}

	return analysis
}

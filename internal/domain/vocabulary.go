package domain

import "fmt"

// FieldMapping liga um nome normalizado aos nomes de cada fonte. Campo vazio significa que a
// fonte não reconhece o nome.
type FieldMapping struct {
	GA4 string
	// GA4Item substitui GA4 quando a consulta tem dimensões de item (produto).
	GA4Item string
	Ads     string
	// Micros indica valor do Google Ads em milionésimos da moeda.
	Micros bool
	// ItemScoped marca dimensões de item do GA4.
	ItemScoped bool
}

var Dimensions = map[string]FieldMapping{
	"date":          {GA4: "date", Ads: "segments.date"},
	"product_id":    {GA4: "itemId", Ads: "segments.product_item_id", ItemScoped: true},
	"product_name":  {GA4: "itemName", Ads: "segments.product_title", ItemScoped: true},
	"campaign_id":   {GA4: "sessionGoogleAdsCampaignId", Ads: "campaign.id"},
	"campaign_name": {GA4: "sessionGoogleAdsCampaignName", Ads: "campaign.name"},
	"page_title":    {GA4: "pageTitle"},
	"event_name":    {GA4: "eventName"},
}

var Metrics = map[string]FieldMapping{
	"impressions":     {GA4: "advertiserAdImpressions", Ads: "metrics.impressions"},
	"clicks":          {GA4: "advertiserAdClicks", Ads: "metrics.clicks"},
	"cost":            {GA4: "advertiserAdCost", Ads: "metrics.cost_micros", Micros: true},
	"revenue":         {GA4: "totalRevenue", GA4Item: "itemRevenue", Ads: "metrics.conversions_value"},
	"conversions":     {GA4: "conversions", Ads: "metrics.conversions"},
	"sessions":        {GA4: "sessions"},
	"users":           {GA4: "totalUsers"},
	"page_views":      {GA4: "screenPageViews"},
	"transactions":    {GA4: "transactions"},
	"items_purchased": {GA4: "itemsPurchased"},
	"event_count":     {GA4: "eventCount"},
}

func (f FieldMapping) NameFor(source Source, itemScoped bool) string {
	switch source {
	case SourceGA4:
		if itemScoped && f.GA4Item != "" {
			return f.GA4Item
		}
		return f.GA4
	case SourceAds:
		return f.Ads
	}
	return ""
}

func SupportsDimension(source Source, name string) bool {
	f, ok := Dimensions[name]
	return ok && f.NameFor(source, false) != ""
}

func SupportsMetric(source Source, name string) bool {
	f, ok := Metrics[name]
	return ok && f.NameFor(source, false) != ""
}

// MetricsFor filtra as métricas que a fonte reconhece, preservando a ordem.
func MetricsFor(source Source, metrics []string) []string {
	out := make([]string, 0, len(metrics))
	for _, m := range metrics {
		if SupportsMetric(source, m) {
			out = append(out, m)
		}
	}
	return out
}

// HasItemDimension indica se alguma dimensão é de produto.
func HasItemDimension(dimensions []string) bool {
	for _, d := range dimensions {
		if Dimensions[d].ItemScoped {
			return true
		}
	}
	return false
}

// ValidateReportRequest rejeita a requisição antes de qualquer chamada de rede.
func ValidateReportRequest(req *ReportRequest, maxSpanDays int) *ReportError {
	if req.StoreID == "" {
		return NewValidationError("store_id", CodeMissingField, "store_id é obrigatório")
	}

	if !req.Source.IsValid() {
		return NewValidationError("source", CodeInvalidSource, fmt.Sprintf("fonte desconhecida: %q", req.Source))
	}

	if req.DateRange.IsZero() {
		return NewValidationError("date_range", CodeInvalidDateRange, "intervalo de datas é obrigatório")
	}
	if req.DateRange.End.Before(req.DateRange.Start) {
		return NewValidationError("date_range", CodeInvalidDateRange, "data final anterior à data inicial")
	}
	if days := req.DateRange.Days(); days > maxSpanDays {
		return NewValidationError("date_range", CodeInvalidDateRange,
			fmt.Sprintf("intervalo de %d dias excede o máximo de %d", days, maxSpanDays))
	}

	if len(req.Dimensions) == 0 {
		return NewValidationError("dimensions", CodeMissingField, "ao menos uma dimensão é obrigatória")
	}
	if len(req.Metrics) == 0 {
		return NewValidationError("metrics", CodeMissingField, "ao menos uma métrica é obrigatória")
	}

	if req.Limit < 0 {
		return NewValidationError("limit", CodeMissingField, "limit não pode ser negativo")
	}

	sources := req.Source.Expand()

	seen := make(map[string]struct{}, len(req.Dimensions))
	for _, d := range req.Dimensions {
		if _, dup := seen[d]; dup {
			return NewValidationError("dimensions", CodeUnknownDimension, fmt.Sprintf("dimensão repetida: %q", d))
		}
		seen[d] = struct{}{}

		// Na consulta combinada a dimensão é chave de junção e precisa existir nas duas fontes
		for _, source := range sources {
			if !SupportsDimension(source, d) {
				return NewValidationError("dimensions", CodeUnknownDimension,
					fmt.Sprintf("dimensão %q não reconhecida pela fonte %s", d, source))
			}
		}
	}

	seen = make(map[string]struct{}, len(req.Metrics))
	for _, m := range req.Metrics {
		if _, dup := seen[m]; dup {
			return NewValidationError("metrics", CodeUnknownMetric, fmt.Sprintf("métrica repetida: %q", m))
		}
		seen[m] = struct{}{}

		known := false
		for _, source := range sources {
			if SupportsMetric(source, m) {
				known = true
				break
			}
		}
		if !known {
			return NewValidationError("metrics", CodeUnknownMetric,
				fmt.Sprintf("métrica %q não reconhecida pela fonte %s", m, req.Source))
		}
	}

	return nil
}

package googleads

import (
	"fmt"
	"strings"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

const (
	resourceCampaign = "campaign"
	resourceShopping = "shopping_performance_view"
)

// BuildQuery monta a consulta GAQL. Dimensões de produto só existem na visão de shopping;
// as demais consultas leem de campaign.
func BuildQuery(q *domain.BackendQuery) string {
	resource := resourceCampaign
	if domain.HasItemDimension(q.Dimensions) {
		resource = resourceShopping
	}

	fields := make([]string, 0, len(q.Dimensions)+len(q.Metrics))
	for _, d := range q.Dimensions {
		fields = append(fields, domain.Dimensions[d].NameFor(domain.SourceAds, false))
	}
	for _, m := range q.Metrics {
		fields = append(fields, domain.Metrics[m].NameFor(domain.SourceAds, false))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(fields, ", "))
	b.WriteString(" FROM ")
	b.WriteString(resource)
	fmt.Fprintf(&b, " WHERE segments.date BETWEEN '%s' AND '%s'", q.DateRange.StartString(), q.DateRange.EndString())
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}

	return b.String()
}

// jsonPath converte "metrics.cost_micros" no caminho camelCase da resposta REST:
// ["metrics", "costMicros"].
func jsonPath(field string) []string {
	parts := strings.Split(field, ".")
	for i, p := range parts {
		parts[i] = snakeToCamel(p)
	}
	return parts
}

func snakeToCamel(s string) string {
	words := strings.Split(s, "_")
	for i := 1; i < len(words); i++ {
		if words[i] == "" {
			continue
		}
		words[i] = strings.ToUpper(words[i][:1]) + words[i][1:]
	}
	return strings.Join(words, "")
}

// lookup percorre o resultado aninhado; ok=false quando o campo não veio.
func lookup(result map[string]any, path []string) (any, bool) {
	var current any = result
	for _, p := range path {
		m, isMap := current.(map[string]any)
		if !isMap {
			return nil, false
		}
		current, isMap = m[p]
		if !isMap {
			return nil, false
		}
	}
	return current, true
}

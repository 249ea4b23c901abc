package insighting

import (
	"fmt"
	"strings"

	json "github.com/json-iterator/go"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/utils"
)

const (
	DefaultTopRows = 20
	// Nomes longos são cortados para economizar tokens
	MaxNameLength = 50
)

type FormatOptions struct {
	TopRows  int
	Language string
}

// FormatPrompt monta o prompt a partir do relatório já mesclado: totais por fonte, as
// TopRows melhores linhas pela primeira métrica e as fontes que falharam.
func FormatPrompt(report *domain.Report, profile *domain.StoreProfile, opts FormatOptions) *domain.Prompt {
	if opts.TopRows <= 0 {
		opts.TopRows = DefaultTopRows
	}
	if opts.Language == "" {
		opts.Language = "português"
	}

	name, site := report.StoreID, ""
	if profile != nil {
		name, site = profile.Name, profile.Domain
	}

	req := report.Request
	orderBy := req.Metrics[0]
	top := domain.TopN(report.Rows, orderBy, req.Dimensions, opts.TopRows)

	var b strings.Builder
	fmt.Fprintf(&b, "Analise os dados de e-commerce da loja %q", name)
	if site != "" {
		fmt.Fprintf(&b, " (%s)", site)
	}
	fmt.Fprintf(&b, " de %s a %s (%d dias):\n\n", req.DateRange.StartString(), req.DateRange.EndString(), req.DateRange.Days())

	fmt.Fprintf(&b, "RESUMO: %s\n", summarize(report))
	fmt.Fprintf(&b, "TOP %d POR %s: %s\n", len(top), strings.ToUpper(orderBy), rowsPayload(top, req))

	if len(report.Failures) > 0 {
		failures := make([]string, 0, len(report.Failures))
		for _, f := range report.Failures {
			failures = append(failures, fmt.Sprintf("%s (%s)", f.Source, f.Kind))
		}
		fmt.Fprintf(&b, "FONTES INDISPONÍVEIS: %s. Considere apenas os dados presentes.\n", strings.Join(failures, ", "))
	}

	b.WriteString("\nAnálise:\n")
	b.WriteString("1. Itens de destaque (receita e tráfego altos)\n")
	b.WriteString("2. Itens com potencial (muito tráfego, pouca receita)\n")
	b.WriteString("3. Itens que precisam de melhoria\n")
	b.WriteString("4. Recomendações de marketing e otimização\n\n")
	fmt.Fprintf(&b, "Responda em %s, de forma concisa.", opts.Language)

	return &domain.Prompt{
		System: fmt.Sprintf("Você é um analista especialista em e-commerce, com experiência em Google Analytics 4 e Google Ads, responsável pela loja %s.", name),
		User:   b.String(),
	}
}

// summarize soma cada métrica pedida por fonte. Métricas sem nenhuma célula presente ficam fora.
func summarize(report *domain.Report) string {
	parts := make([]string, 0)
	for _, metric := range report.Request.Metrics {
		for _, source := range domain.MergeOrder {
			if !report.Succeeded(source) {
				continue
			}
			total, present := domain.Sum(report.Rows, source, metric)
			if present == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s %s = %.2f", metric, source, total))
		}
	}
	if len(parts) == 0 {
		return "sem dados no período"
	}
	return strings.Join(parts, "; ")
}

func rowsPayload(rows []*domain.MergedRow, req *domain.ReportRequest) string {
	payload := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		entry := make(map[string]interface{}, len(req.Dimensions)+len(req.Metrics))
		for _, d := range req.Dimensions {
			entry[d] = utils.TruncateText(row.Dimensions[d], MaxNameLength)
		}
		for _, source := range domain.MergeOrder {
			for metric, cell := range row.Values[source] {
				if cell.Absent {
					continue
				}
				entry[fmt.Sprintf("%s_%s", metric, source)] = utils.RoundWithTwoDecimalPlace(cell.Value)
			}
		}
		payload = append(payload, entry)
	}

	out, err := json.ConfigCompatibleWithStandardLibrary.Marshal(payload)
	if err != nil {
		return "[]"
	}
	return string(out)
}

package reporting

import (
	"slices"
	"sort"
	"strings"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

type mergeEntry struct {
	row    *domain.MergedRow
	sums   map[domain.Source]map[string]float64
	seenIn map[domain.Source]bool
}

// Merge faz a junção externa das linhas das fontes por igualdade exata das chaves.
// Linhas repetidas da mesma fonte para a mesma chave são somadas. Toda fonte de
// spec.Columns aparece em todas as linhas: sem linha para a chave, sem a métrica na linha,
// ou sem resultado nenhum (fonte que falhou), a célula sai ausente, nunca zero.
func Merge(results map[domain.Source][]domain.MetricRow, spec domain.MergeSpec) []*domain.MergedRow {
	entries := make(map[string]*mergeEntry)
	order := make([]string, 0)

	for _, source := range domain.MergeOrder {
		for _, r := range results[source] {
			key := r.Key(spec.JoinKeys)

			entry, ok := entries[key]
			if !ok {
				dims := make(map[string]string, len(spec.JoinKeys))
				for _, k := range spec.JoinKeys {
					dims[k] = r.Dimensions[k]
				}
				entry = &mergeEntry{
					row:    &domain.MergedRow{Dimensions: dims},
					sums:   make(map[domain.Source]map[string]float64),
					seenIn: make(map[domain.Source]bool),
				}
				entries[key] = entry
				order = append(order, key)
			}

			if entry.sums[source] == nil {
				entry.sums[source] = make(map[string]float64, len(r.Metrics))
			}
			for metric, value := range r.Metrics {
				entry.sums[source][metric] += value
			}
			entry.seenIn[source] = true
		}
	}

	rows := make([]*domain.MergedRow, 0, len(order))
	for _, key := range order {
		entry := entries[key]
		entry.row.Values = make(map[domain.Source]map[string]domain.Cell, len(spec.Columns))

		for source, columns := range spec.Columns {
			cells := make(map[string]domain.Cell, len(columns))
			for _, metric := range columns {
				value, ok := entry.sums[source][metric]
				if !entry.seenIn[source] || !ok {
					cells[metric] = domain.AbsentCell()
					continue
				}
				cells[metric] = domain.Cell{Value: value}
			}
			entry.row.Values[source] = cells
		}

		rows = append(rows, entry.row)
	}

	SortRows(rows, spec)
	return rows
}

// SortRows ordena por data crescente quando date é chave, depois pela métrica de ordenação
// decrescente (linhas sem o valor em nenhuma fonte vão para o fim) e por fim pelos valores
// das dimensões.
func SortRows(rows []*domain.MergedRow, spec domain.MergeSpec) {
	byDate := slices.Contains(spec.JoinKeys, "date")

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if byDate {
			if c := strings.Compare(a.Dimensions["date"], b.Dimensions["date"]); c != 0 {
				return c < 0
			}
		}

		if spec.OrderBy != "" {
			va, okA := a.Value(spec.OrderBy)
			vb, okB := b.Value(spec.OrderBy)
			switch {
			case okA && !okB:
				return true
			case !okA && okB:
				return false
			case okA && okB && va != vb:
				return va > vb
			}
		}

		return domain.CompareDimensions(a, b, spec.JoinKeys) < 0
	})
}

package domain

import (
	"sort"
	"strings"
)

// Sum soma a métrica da fonte ignorando células ausentes. present conta as células somadas,
// para que o chamador distinga "sem dados" de zero.
func Sum(rows []*MergedRow, source Source, metric string) (total float64, present int) {
	for _, row := range rows {
		cell := row.Cell(source, metric)
		if cell.Absent {
			continue
		}
		total += cell.Value
		present++
	}
	return total, present
}

// TopN ordena por metric decrescente, desempata pelos valores das dimensões em keys e
// devolve até n linhas. Linhas sem a métrica em nenhuma fonte ficam de fora.
func TopN(rows []*MergedRow, metric string, keys []string, n int) []*MergedRow {
	candidates := make([]*MergedRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := row.Value(metric); ok {
			candidates = append(candidates, row)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		vi, _ := candidates[i].Value(metric)
		vj, _ := candidates[j].Value(metric)
		if vi != vj {
			return vi > vj
		}
		return CompareDimensions(candidates[i], candidates[j], keys) < 0
	})

	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// CompareDimensions compara lexicograficamente os valores das dimensões na ordem de keys.
func CompareDimensions(a, b *MergedRow, keys []string) int {
	for _, k := range keys {
		if c := strings.Compare(a.Dimensions[k], b.Dimensions[k]); c != 0 {
			return c
		}
	}
	return 0
}

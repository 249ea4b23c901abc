package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRow(name string, metrics map[string]float64) *MergedRow {
	cells := make(map[string]Cell, len(metrics))
	for k, v := range metrics {
		cells[k] = Cell{Value: v}
	}
	return &MergedRow{
		Dimensions: map[string]string{"product_name": name},
		Values:     map[Source]map[string]Cell{SourceGA4: cells},
	}
}

func pageRow(title string, views float64) *MergedRow {
	return &MergedRow{
		Dimensions: map[string]string{"page_title": title},
		Values:     map[Source]map[string]Cell{SourceGA4: {"page_views": {Value: views}}},
	}
}

func findProduct(t *testing.T, products []CombinedProduct, name string) CombinedProduct {
	t.Helper()
	for _, p := range products {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "produto não encontrado", "%s", name)
	return CombinedProduct{}
}

func TestCombineRankings(t *testing.T) {
	lists := map[RankingKind][]*MergedRow{
		RankingRevenue: {
			productRow("Camiseta", map[string]float64{"revenue": 900, "items_purchased": 30}),
			productRow("Caneca", map[string]float64{"revenue": 500, "items_purchased": 50}),
			productRow("Boné", map[string]float64{"revenue": 100, "items_purchased": 2}),
		},
		RankingSales: {
			productRow("Caneca", map[string]float64{"items_purchased": 50, "revenue": 500}),
			productRow("Camiseta", map[string]float64{"items_purchased": 30, "revenue": 900}),
			productRow("Meia", map[string]float64{"items_purchased": 10, "revenue": 40}),
		},
		RankingViews: {
			pageRow("Camiseta", 3000),
			pageRow("Blog", 800),
		},
	}

	combined := CombineRankings(lists)
	require.Len(t, combined.Products, 5)

	tests := []struct {
		name       string
		product    string
		score      int
		ranks      [3]int
		label      string
		categories []RankingKind
	}{
		{
			name:       "nas três listas soma as três pontuações",
			product:    "Camiseta",
			score:      10 + 9 + 10,
			ranks:      [3]int{1, 2, 1},
			label:      "Receita | Mais vendido | Mais visto",
			categories: []RankingKind{RankingRevenue, RankingSales, RankingViews},
		},
		{
			name:       "receita e vendas",
			product:    "Caneca",
			score:      9 + 10,
			ranks:      [3]int{2, 1, 0},
			label:      "Receita | Mais vendido",
			categories: []RankingKind{RankingRevenue, RankingSales},
		},
		{
			name:       "só receita",
			product:    "Boné",
			score:      8,
			ranks:      [3]int{3, 0, 0},
			label:      "Receita",
			categories: []RankingKind{RankingRevenue},
		},
		{
			name:       "só views",
			product:    "Blog",
			score:      9,
			ranks:      [3]int{0, 0, 2},
			label:      "Mais visto",
			categories: []RankingKind{RankingViews},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := findProduct(t, combined.Products, tt.product)
			assert.Equal(t, tt.score, p.Score)
			assert.Equal(t, tt.ranks, [3]int{p.RevenueRank, p.SalesRank, p.ViewsRank})
			assert.Equal(t, tt.label, p.Label)
			assert.Equal(t, tt.categories, p.Categories)
		})
	}

	t.Run("ordena por pontuação e desempata pelo nome", func(t *testing.T) {
		names := make([]string, 0, len(combined.Products))
		for _, p := range combined.Products {
			names = append(names, p.Name)
		}
		// Boné e Meia empatam com 8
		assert.Equal(t, []string{"Camiseta", "Caneca", "Blog", "Boné", "Meia"}, names)
	})

	t.Run("valores vêm da lista em que o produto aparece", func(t *testing.T) {
		camiseta := findProduct(t, combined.Products, "Camiseta")
		assert.Equal(t, Cell{Value: 900}, camiseta.Revenue)
		assert.Equal(t, Cell{Value: 30}, camiseta.Sales)
		assert.Equal(t, Cell{Value: 3000}, camiseta.Views)

		caneca := findProduct(t, combined.Products, "Caneca")
		assert.True(t, caneca.Views.Absent)

		blog := findProduct(t, combined.Products, "Blog")
		assert.True(t, blog.Revenue.Absent)
		assert.True(t, blog.Sales.Absent)
	})

	t.Run("sobreposição entre listas", func(t *testing.T) {
		o := combined.Overlap
		assert.Equal(t, []string{"Camiseta"}, o.AllThree)
		assert.Equal(t, 1, o.RevenueAndSales)
		assert.Equal(t, 0, o.RevenueAndViews)
		assert.Equal(t, 0, o.SalesAndViews)
		assert.Equal(t, 1, o.RevenueOnly)
		assert.Equal(t, 1, o.SalesOnly)
		assert.Equal(t, 1, o.ViewsOnly)
		assert.Equal(t, 2, o.MultiList)
		// 1 produto nas três sobre a menor lista (views, 2 itens)
		assert.InDelta(t, 50.0, o.Rate, 0.001)
	})

	t.Run("destaque limitado aos cinco primeiros", func(t *testing.T) {
		assert.Len(t, combined.TopComprehensive, 5)
		assert.Equal(t, "Camiseta", combined.TopComprehensive[0].Name)
	})
}

func TestCombineRankings_SemViews(t *testing.T) {
	revenue := make([]*MergedRow, 0, 7)
	for i := 1; i <= 7; i++ {
		revenue = append(revenue, productRow(fmt.Sprintf("P%d", i), map[string]float64{"revenue": float64(100 - i)}))
	}

	combined := CombineRankings(map[RankingKind][]*MergedRow{RankingRevenue: revenue})

	require.Len(t, combined.Products, 7)
	assert.Len(t, combined.TopComprehensive, CombinedHighlights)
	assert.Equal(t, 10, combined.Products[0].Score)
	assert.Equal(t, 7, combined.Overlap.RevenueOnly)
	assert.Empty(t, combined.Overlap.AllThree)
	assert.Zero(t, combined.Overlap.Rate, "lista vazia não divide por zero")
}

func TestCombineRankings_NomeRepetidoContaUmaVez(t *testing.T) {
	combined := CombineRankings(map[RankingKind][]*MergedRow{
		RankingRevenue: {
			productRow("Caneca", map[string]float64{"revenue": 50}),
			productRow("Caneca", map[string]float64{"revenue": 40}),
			productRow("", map[string]float64{"revenue": 30}),
			productRow("Boné", map[string]float64{"revenue": 20}),
		},
	})

	require.Len(t, combined.Products, 2)
	assert.Equal(t, 1, findProduct(t, combined.Products, "Caneca").RevenueRank)
	assert.Equal(t, 2, findProduct(t, combined.Products, "Boné").RevenueRank)
}

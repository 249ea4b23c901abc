// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"sort"
	"strings"
	"time"
)

type RankingKind string

const (
	RankingRevenue  RankingKind = "revenue"
	RankingSales    RankingKind = "sales"
	RankingViews    RankingKind = "views"
	// RankingCombined cruza as três visões acima por nome do produto.
	RankingCombined RankingKind = "combined"
)

const (
	// CombinedListSize é o tamanho de cada lista cruzada na visão combinada.
	CombinedListSize = 10
	// CombinedHighlights é quantos produtos entram no destaque "mais completos".
	CombinedHighlights = 5
)

// CombinedKinds é a ordem das listas cruzadas; também ordena os rótulos.
var CombinedKinds = []RankingKind{RankingRevenue, RankingSales, RankingViews}

var rankingLabels = map[RankingKind]string{
	RankingRevenue: "Receita",
	RankingSales:   "Mais vendido",
	RankingViews:   "Mais visto",
}

// RankingQuery descreve a consulta de cada visão "top" do painel.
type RankingQuery struct {
	Source     Source
	Dimensions []string
	Metrics    []string
}

// RankingQueries mapeia cada visão para a consulta. A primeira métrica ordena o ranking.
// "Vendas" conta unidades compradas do item (itemsPurchased), não pedidos: transactions do
// GA4 não existe no escopo de item.
var RankingQueries = map[RankingKind]RankingQuery{
	RankingRevenue: {Source: SourceBoth, Dimensions: []string{"product_name"}, Metrics: []string{"revenue", "items_purchased"}},
	RankingSales:   {Source: SourceBoth, Dimensions: []string{"product_name"}, Metrics: []string{"items_purchased", "revenue"}},
	RankingViews:   {Source: SourceGA4, Dimensions: []string{"page_title"}, Metrics: []string{"page_views", "sessions"}},
}

func (k RankingKind) IsValid() bool {
	if k == RankingCombined {
		return true
	}
	_, ok := RankingQueries[k]
	return ok
}

type RankingItem struct {
	Position   int                        `json:"position"`
	Dimensions map[string]string          `json:"dimensions"`
	Values     map[Source]map[string]Cell `json:"values"`
}

type RankingResponse struct {
	StoreID     string                   `json:"store_id"`
	Kind        RankingKind              `json:"kind"`
	DateRange   DateRange                `json:"date_range"`
	Items       []RankingItem            `json:"items"`
	Combined    *CombinedRanking         `json:"combined,omitempty"`
	Sources     map[Source]*SourceStatus `json:"sources"`
	Partial     bool                     `json:"partial"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// CombinedProduct é um produto presente em ao menos uma das listas. Posição zero significa
// fora da lista; a pontuação soma 11 - posição de cada lista em que aparece.
type CombinedProduct struct {
	Name        string        `json:"name"`
	Revenue     Cell          `json:"revenue"`
	Sales       Cell          `json:"sales"`
	Views       Cell          `json:"views"`
	RevenueRank int           `json:"revenue_rank"`
	SalesRank   int           `json:"sales_rank"`
	ViewsRank   int           `json:"views_rank"`
	Categories  []RankingKind `json:"categories"`
	Label       string        `json:"label"`
	Score       int           `json:"score"`
}

func (p *CombinedProduct) rankFor(kind RankingKind) *int {
	switch kind {
	case RankingRevenue:
		return &p.RevenueRank
	case RankingSales:
		return &p.SalesRank
	default:
		return &p.ViewsRank
	}
}

// RankingOverlap conta os produtos por combinação de listas. Os pares excluem quem está
// nas três; Rate é o percentual dos que estão nas três sobre a menor lista.
type RankingOverlap struct {
	AllThree        []string `json:"all_three"`
	RevenueAndSales int      `json:"revenue_and_sales"`
	RevenueAndViews int      `json:"revenue_and_views"`
	SalesAndViews   int      `json:"sales_and_views"`
	RevenueOnly     int      `json:"revenue_only"`
	SalesOnly       int      `json:"sales_only"`
	ViewsOnly       int      `json:"views_only"`
	MultiList       int      `json:"multi_list"`
	Rate            float64  `json:"rate"`
}

type CombinedRanking struct {
	Products         []CombinedProduct `json:"products"`
	TopComprehensive []CombinedProduct `json:"top_comprehensive"`
	Overlap          RankingOverlap    `json:"overlap"`
}

// CombineRankings cruza as listas já ordenadas de cada visão. O produto é identificado pelo
// valor da primeira dimensão da consulta da visão (nome do item ou título da página).
// Empates de pontuação seguem a ordem alfabética do nome.
func CombineRankings(lists map[RankingKind][]*MergedRow) *CombinedRanking {
	byName := make(map[string]*CombinedProduct)
	sizes := make(map[RankingKind]int, len(CombinedKinds))

	for _, kind := range CombinedKinds {
		query := RankingQueries[kind]
		key := query.Dimensions[0]
		seen := make(map[string]struct{})

		for _, row := range lists[kind] {
			name := row.Dimensions[key]
			if _, dup := seen[name]; dup || name == "" {
				continue
			}
			seen[name] = struct{}{}

			p, ok := byName[name]
			if !ok {
				p = &CombinedProduct{Name: name, Revenue: AbsentCell(), Sales: AbsentCell(), Views: AbsentCell()}
				byName[name] = p
			}

			rank := len(seen)
			*p.rankFor(kind) = rank
			p.Score += CombinedListSize + 1 - rank
			fillCombinedValues(p, row)
		}
		sizes[kind] = len(seen)
	}

	products := make([]CombinedProduct, 0, len(byName))
	overlap := RankingOverlap{AllThree: []string{}}

	for _, p := range byName {
		labels := make([]string, 0, len(CombinedKinds))
		for _, kind := range CombinedKinds {
			if *p.rankFor(kind) > 0 {
				p.Categories = append(p.Categories, kind)
				labels = append(labels, rankingLabels[kind])
			}
		}
		p.Label = strings.Join(labels, " | ")
		countOverlap(&overlap, p)
		products = append(products, *p)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Score != products[j].Score {
			return products[i].Score > products[j].Score
		}
		return products[i].Name < products[j].Name
	})
	sort.Strings(overlap.AllThree)

	smallest := 0
	for i, kind := range CombinedKinds {
		if i == 0 || sizes[kind] < smallest {
			smallest = sizes[kind]
		}
	}
	if smallest > 0 {
		overlap.Rate = float64(len(overlap.AllThree)) / float64(smallest) * 100
	}

	top := products
	if len(top) > CombinedHighlights {
		top = top[:CombinedHighlights]
	}

	return &CombinedRanking{
		Products:         products,
		TopComprehensive: top,
		Overlap:          overlap,
	}
}

// As consultas de receita e de vendas trazem as duas métricas; views só vem da própria lista.
func fillCombinedValues(p *CombinedProduct, row *MergedRow) {
	if v, ok := row.Value("revenue"); ok {
		p.Revenue = Cell{Value: v}
	}
	if v, ok := row.Value("items_purchased"); ok {
		p.Sales = Cell{Value: v}
	}
	if v, ok := row.Value("page_views"); ok {
		p.Views = Cell{Value: v}
	}
}

func countOverlap(o *RankingOverlap, p *CombinedProduct) {
	revenue, sales, views := p.RevenueRank > 0, p.SalesRank > 0, p.ViewsRank > 0

	if len(p.Categories) > 1 {
		o.MultiList++
	}

	switch {
	case revenue && sales && views:
		o.AllThree = append(o.AllThree, p.Name)
	case revenue && sales:
		o.RevenueAndSales++
	case revenue && views:
		o.RevenueAndViews++
	case sales && views:
		o.SalesAndViews++
	case revenue:
		o.RevenueOnly++
	case sales:
		o.SalesOnly++
	case views:
		o.ViewsOnly++
	}
}

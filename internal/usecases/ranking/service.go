package ranking

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/reporting"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type RankingService interface {
	// GetTopProducts monta as visões "top receita", "top vendas" e "top views" da loja,
	// ou a visão combinada que cruza as três
	GetTopProducts(ctx context.Context, storeID string, kind domain.RankingKind, dateRange domain.DateRange, source domain.Source, limit int) (*domain.RankingResponse, error)
}

type StoreRankingService struct {
	reporter reporting.Reporter
}

func NewStoreRankingService(reporter reporting.Reporter) RankingService {
	return &StoreRankingService{reporter: reporter}
}

// GetTopProducts consulta o relatório da visão e aplica TopN sobre o resultado mesclado.
// source vazio usa a fonte padrão da visão.
func (s *StoreRankingService) GetTopProducts(ctx context.Context, storeID string, kind domain.RankingKind, dateRange domain.DateRange, source domain.Source, limit int) (*domain.RankingResponse, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", domain.CodeInvalidField,
			fmt.Sprintf("ranking desconhecido: %q (use revenue, sales, views ou combined)", kind))
	}

	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	if kind == domain.RankingCombined {
		return s.combined(ctx, storeID, dateRange, source)
	}

	report, top, err := s.topList(ctx, storeID, kind, dateRange, source, limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.RankingItem, 0, len(top))
	for i, row := range top {
		items = append(items, domain.RankingItem{
			Position:   i + 1,
			Dimensions: row.Dimensions,
			Values:     row.Values,
		})
	}

	return &domain.RankingResponse{
		StoreID:     storeID,
		Kind:        kind,
		DateRange:   dateRange,
		Items:       items,
		Sources:     report.Sources,
		Partial:     report.Partial,
		GeneratedAt: report.GeneratedAt,
	}, nil
}

// topList executa o relatório da visão e devolve as primeiras linhas pela métrica principal.
func (s *StoreRankingService) topList(ctx context.Context, storeID string, kind domain.RankingKind, dateRange domain.DateRange, source domain.Source, limit int) (*domain.Report, []*domain.MergedRow, error) {
	query := domain.RankingQueries[kind]
	if source == "" {
		source = query.Source
	}

	report, err := s.reporter.Execute(ctx, &domain.ReportRequest{
		StoreID:    storeID,
		Source:     source,
		DateRange:  dateRange,
		Dimensions: query.Dimensions,
		Metrics:    query.Metrics,
	})
	if err != nil {
		return nil, nil, err
	}

	return report, domain.TopN(report.Rows, query.Metrics[0], query.Dimensions, limit), nil
}

// combined consulta as três visões em paralelo, cada uma limitada a CombinedListSize, e
// cruza os resultados. A fonte informada vale só para as listas de produto; views é sempre GA4.
func (s *StoreRankingService) combined(ctx context.Context, storeID string, dateRange domain.DateRange, source domain.Source) (*domain.RankingResponse, error) {
	var (
		mu      sync.Mutex
		lists   = make(map[domain.RankingKind][]*domain.MergedRow, len(domain.CombinedKinds))
		reports = make(map[domain.RankingKind]*domain.Report, len(domain.CombinedKinds))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range domain.CombinedKinds {
		kind := kind
		listSource := source
		if domain.RankingQueries[kind].Source != domain.SourceBoth {
			listSource = ""
		}

		g.Go(func() error {
			report, top, err := s.topList(gctx, storeID, kind, dateRange, listSource, domain.CombinedListSize)
			if err != nil {
				return err
			}
			mu.Lock()
			lists[kind] = top
			reports[kind] = report
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &domain.RankingResponse{
		StoreID:   storeID,
		Kind:      domain.RankingCombined,
		DateRange: dateRange,
		Items:     []domain.RankingItem{},
		Combined:  domain.CombineRankings(lists),
		Sources:   make(map[domain.Source]*domain.SourceStatus),
	}

	// Uma fonte que falhou em qualquer lista aparece como falha.
	for _, kind := range domain.CombinedKinds {
		report := reports[kind]
		resp.Partial = resp.Partial || report.Partial
		if report.GeneratedAt.After(resp.GeneratedAt) {
			resp.GeneratedAt = report.GeneratedAt
		}
		for src, status := range report.Sources {
			if current, ok := resp.Sources[src]; !ok || current.State != domain.SourceStateFailed {
				resp.Sources[src] = status
			}
		}
	}

	return resp, nil
}

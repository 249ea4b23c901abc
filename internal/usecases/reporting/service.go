package reporting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/metrics"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

type Service struct {
	cfg         *config.Config
	credentials CredentialStore
	tokens      TokenProvider
	backends    map[domain.Source]Backend
	dispatcher  *Dispatcher
	metrics     metrics.Recorder
	now         func() time.Time
}

func NewService(
	cfg *config.Config,
	credentials CredentialStore,
	tokens TokenProvider,
	dispatcher *Dispatcher,
	recorder metrics.Recorder,
	backends ...Backend,
) *Service {
	if recorder == nil {
		recorder = metrics.Noop()
	}

	registered := make(map[domain.Source]Backend, len(backends))
	for _, b := range backends {
		registered[b.Source()] = b
	}

	return &Service{
		cfg:         cfg,
		credentials: credentials,
		tokens:      tokens,
		backends:    registered,
		dispatcher:  dispatcher,
		metrics:     recorder,
		now:         time.Now,
	}
}

// Execute valida a requisição, consulta as fontes em paralelo e mescla o que voltou.
// Uma fonte com falha não descarta a outra: o relatório sai marcado como parcial. Se todas
// falharem, o relatório vem junto com um erro que envolve domain.ErrAllSourcesFailed.
func (s *Service) Execute(ctx context.Context, req *domain.ReportRequest) (*domain.Report, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"store_id": req.StoreID,
		"source":   req.Source,
	})

	if re := domain.ValidateReportRequest(req, s.cfg.Dispatcher.MaxDateSpan); re != nil {
		return nil, re
	}

	cred, err := s.credentials.GetCredential(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("erro ao carregar credenciais da loja %s: %w", req.StoreID, err)
	}

	account, re := ResolveAccount(cred, req.CustomerID)
	if re != nil {
		return nil, re
	}

	sources := req.Source.Expand()
	for _, source := range sources {
		if _, ok := s.backends[source]; !ok {
			return nil, fmt.Errorf("fonte %s não registrada", source)
		}
	}

	var (
		mu      sync.Mutex
		results = make(map[domain.Source]domain.SourceResult, len(sources))
	)

	// As goroutines nunca devolvem erro: a falha de uma fonte fica no SourceResult e não
	// cancela a outra. O cancelamento vem apenas do contexto do chamador.
	g, gctx := errgroup.WithContext(ctx)
	for _, source := range sources {
		source := source
		backend := s.backends[source]
		query := &domain.BackendQuery{
			Account:    account,
			DateRange:  req.DateRange,
			Dimensions: req.Dimensions,
			Metrics:    domain.MetricsFor(source, req.Metrics),
			Limit:      req.Limit,
		}

		g.Go(func() error {
			result := s.dispatcher.Dispatch(gctx, source, func(attemptCtx context.Context) ([]domain.MetricRow, error) {
				return s.queryWithToken(attemptCtx, cred, backend, query)
			})

			mu.Lock()
			results[source] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		logger.WithError(err).Warn("reporting: requisição cancelada")
		return nil, err
	}

	report := s.buildReport(req, sources, results)

	switch {
	case len(report.Failures) == len(sources):
		s.metrics.IncReport("failed")
		logger.WithField("error", report.Failures[0].Error()).Warn("reporting: todas as fontes falharam")
		return report, fmt.Errorf("%w: %w", domain.ErrAllSourcesFailed, report.Failures[0])
	case report.Partial:
		s.metrics.IncReport("partial")
		logger.Warn("reporting: relatório parcial")
	default:
		s.metrics.IncReport("ok")
	}

	logger.WithField("rows", len(report.Rows)).Info("reporting: relatório gerado")

	return report, nil
}

// queryWithToken faz a consulta com o token em cache. Se a fonte recusar o token, ele é
// descartado e a consulta é repetida uma vez com um token recém-trocado.
func (s *Service) queryWithToken(ctx context.Context, cred *domain.StoreCredential, backend Backend, query *domain.BackendQuery) ([]domain.MetricRow, error) {
	rows, err := s.queryOnce(ctx, cred, backend, query)
	if !domain.IsAccessTokenRejected(err) {
		return rows, err
	}

	log.ForStore(ctx, cred.StoreID).WithField("source", backend.Source()).
		Warn("reporting: access token recusado pela fonte, trocando de novo")
	s.tokens.Invalidate(cred.StoreID)

	return s.queryOnce(ctx, cred, backend, query)
}

func (s *Service) queryOnce(ctx context.Context, cred *domain.StoreCredential, backend Backend, query *domain.BackendQuery) ([]domain.MetricRow, error) {
	token, err := s.tokens.ObtainAccessToken(ctx, cred)
	if err != nil {
		return nil, err
	}

	q := *query
	q.AccessToken = token.Value
	return backend.Query(ctx, &q)
}

func (s *Service) buildReport(req *domain.ReportRequest, sources []domain.Source, results map[domain.Source]domain.SourceResult) *domain.Report {
	report := &domain.Report{
		StoreID:     req.StoreID,
		Request:     req,
		Sources:     make(map[domain.Source]*domain.SourceStatus, len(sources)),
		GeneratedAt: s.now().UTC(),
	}

	succeeded := make(map[domain.Source][]domain.MetricRow, len(sources))
	spec := domain.MergeSpec{
		JoinKeys: req.Dimensions,
		Columns:  make(map[domain.Source][]string, len(sources)),
		OrderBy:  req.Metrics[0],
	}

	for _, source := range sources {
		result := results[source]
		status := &domain.SourceStatus{
			Source:   source,
			Attempts: result.Attempts,
		}

		if result.Err != nil {
			status.State = domain.SourceStateFailed
			status.Error = result.Err
			report.Failures = append(report.Failures, result.Err)
		} else {
			status.State = domain.SourceStateOK
			status.Rows = len(result.Rows)
			succeeded[source] = result.Rows
		}

		// A fonte que falhou também tem colunas: suas células saem ausentes em cada linha.
		spec.Columns[source] = domain.MetricsFor(source, req.Metrics)

		report.Sources[source] = status
	}

	report.Partial = len(report.Failures) > 0 && len(succeeded) > 0
	report.Rows = Merge(succeeded, spec)

	return report
}

package insighting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/reporting"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

type Service struct {
	cfg      *config.Config
	reporter reporting.Reporter
	profiles ProfileReader
	narrator Narrator
}

func NewService(cfg *config.Config, reporter reporting.Reporter, profiles ProfileReader, narrator Narrator) Insighter {
	return &Service{
		cfg:      cfg,
		reporter: reporter,
		profiles: profiles,
		narrator: narrator,
	}
}

// Insights executa o relatório e pede a narrativa sobre ele. Um relatório parcial ainda
// gera narrativa; se todas as fontes falharem, o erro do relatório é devolvido.
func (s *Service) Insights(ctx context.Context, req *domain.ReportRequest) (*domain.InsightResponse, error) {
	logger := log.ForStore(ctx, req.StoreID)

	report, err := s.reporter.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, req.StoreID)
	if err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
		logger.WithError(err).Warn("insighting: perfil da loja indisponível, usando o id no prompt")
	}

	prompt := FormatPrompt(report, profile, FormatOptions{
		TopRows:  s.cfg.Narrative.TopRows,
		Language: s.cfg.Narrative.Language,
	})

	text, err := s.narrator.Complete(ctx, prompt)
	if err != nil {
		logger.WithError(err).Error("insighting: erro ao gerar narrativa")
		return nil, fmt.Errorf("erro ao gerar narrativa: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyNarrative
	}

	return &domain.InsightResponse{
		Report:    report,
		Narrative: text,
		Model:     s.narrator.Model(),
	}, nil
}

// Analyze consulta as duas fontes por dia e calcula totais, ROAS, CTR e custo por conversão.
func (s *Service) Analyze(ctx context.Context, storeID string, dateRange domain.DateRange) (*domain.Analysis, error) {
	report, err := s.reporter.Execute(ctx, &domain.ReportRequest{
		StoreID:    storeID,
		Source:     domain.SourceBoth,
		DateRange:  dateRange,
		Dimensions: []string{"date"},
		Metrics:    domain.AnalysisMetrics,
	})
	if err != nil {
		return nil, err
	}

	return domain.CalculateAnalysis(report), nil
}

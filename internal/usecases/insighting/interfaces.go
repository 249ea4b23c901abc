package insighting

import (
	"context"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// Narrator envia o prompt ao serviço de narrativa e devolve o texto gerado.
type Narrator interface {
	Complete(ctx context.Context, prompt *domain.Prompt) (string, error)
	Model() string
}

// ProfileReader fornece nome e domínio da loja para o prompt.
type ProfileReader interface {
	GetProfile(ctx context.Context, storeID string) (*domain.StoreProfile, error)
}

type Insighter interface {
	// Insights gera o relatório e a narrativa sobre ele
	Insights(ctx context.Context, req *domain.ReportRequest) (*domain.InsightResponse, error)

	// Analyze calcula a análise combinada GA4 + Google Ads do período
	Analyze(ctx context.Context, storeID string, dateRange domain.DateRange) (*domain.Analysis, error)
}

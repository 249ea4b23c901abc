package reporting

import (
	"context"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// Backend é uma fonte de relatórios (GA4 ou Google Ads) atrás da mesma forma de consulta.
type Backend interface {
	Source() domain.Source
	Query(ctx context.Context, q *domain.BackendQuery) ([]domain.MetricRow, error)
}

type TokenProvider interface {
	ObtainAccessToken(ctx context.Context, cred *domain.StoreCredential) (*domain.AccessToken, error)
	Invalidate(storeID string)
}

// CredentialStore devolve as credenciais no momento da requisição; nada é mantido além dela.
// GetCredential devolve domain.ErrStoreNotFound quando a loja não existe.
type CredentialStore interface {
	GetCredential(ctx context.Context, storeID string) (*domain.StoreCredential, error)
	ListStoreIDs(ctx context.Context) ([]string, error)
}

// Reporter executa um ReportRequest e devolve o relatório mesclado.
type Reporter interface {
	Execute(ctx context.Context, req *domain.ReportRequest) (*domain.Report, error)
}

package managing

import (
	"context"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// CredentialTracker é o lado do gerenciador de tokens que o cadastro enxerga: o estado da
// loja e o descarte do cache quando as credenciais mudam.
type CredentialTracker interface {
	Forget(storeID string)
	Status(storeID string) domain.CredentialStatus
}

// ProductCounter consulta a API de catálogo da loja.
type ProductCounter interface {
	CountProducts(ctx context.Context, profile *domain.StoreProfile) (int, error)
}

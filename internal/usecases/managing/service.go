// Package managing cuida do cadastro das lojas: credenciais, perfil, catálogo e exportação.
package managing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/repository"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/utils"
)

type StoreManager interface {
	Register(ctx context.Context, req *domain.RegisterStoreRequest) (*domain.StoreSummary, error)
	UpdateCredentials(ctx context.Context, storeID string, cred *domain.StoreCredential) (*domain.StoreCredential, error)
	Delete(ctx context.Context, storeID string) error
	List(ctx context.Context) ([]*domain.StoreSummary, error)
	Use(ctx context.Context, storeID string) error
	Export(ctx context.Context) ([]*domain.StoreExport, error)
	ProductCount(ctx context.Context, storeID string) (int, error)
	SyncProductCounts(ctx context.Context) (int, error)
}

type Service struct {
	stores        repository.StoreRepository
	tracker       CredentialTracker
	counter       ProductCounter
	maxConcurrent int
	now           func() time.Time
}

func NewService(
	cfg *config.Config,
	stores repository.StoreRepository,
	tracker CredentialTracker,
	counter ProductCounter,
) StoreManager {
	maxConcurrent := cfg.CatalogSync.MaxConcurrentJobs
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Service{
		stores:        stores,
		tracker:       tracker,
		counter:       counter,
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req *domain.RegisterStoreRequest) (*domain.StoreSummary, error) {
	profile := req.Profile
	cred := req.Credential

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Domain = strings.TrimSpace(profile.Domain)
	cred.Normalize()

	if err := validateStruct(&profile); err != nil {
		return nil, err
	}
	if err := validateCredential(&cred); err != nil {
		return nil, err
	}

	storeID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateID, err)
	}

	profile.StoreID = storeID
	profile.CreatedAt = s.now().UTC()
	cred.StoreID = storeID

	if err := s.stores.CreateStore(ctx, &profile, &cred); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"store_id":    storeID,
		"customer_id": cred.CustomerID,
	}).Info("Loja cadastrada")

	profile.CatalogKey = ""
	profile.CatalogSecret = ""

	return &domain.StoreSummary{
		StoreProfile:      &profile,
		CustomerID:        cred.CustomerID,
		ManagerCustomerID: cred.ManagerCustomerID,
		GA4PropertyID:     cred.GA4PropertyID,
		AccessLevel:       cred.AccessLevel,
		HasAds:            true,
		HasGA4:            cred.GA4PropertyID != "",
		Usable:            true,
	}, nil
}

// UpdateCredentials substitui a credencial inteira e libera a loja caso estivesse marcada
// como inutilizável.
func (s *Service) UpdateCredentials(ctx context.Context, storeID string, cred *domain.StoreCredential) (*domain.StoreCredential, error) {
	updated := *cred
	updated.StoreID = storeID
	updated.Normalize()

	if err := validateCredential(&updated); err != nil {
		return nil, err
	}

	if err := s.stores.UpdateCredential(ctx, &updated); err != nil {
		return nil, err
	}

	s.tracker.Forget(storeID)

	log.ForContext(ctx).WithFields(log.Fields{
		"store_id":    storeID,
		"customer_id": updated.CustomerID,
	}).Info("Credenciais da loja reenviadas")

	return updated.Redacted(), nil
}

func (s *Service) Delete(ctx context.Context, storeID string) error {
	if err := s.stores.DeleteStore(ctx, storeID); err != nil {
		return err
	}

	s.tracker.Forget(storeID)

	log.ForStore(ctx, storeID).Info("Loja removida")
	return nil
}

func (s *Service) List(ctx context.Context) ([]*domain.StoreSummary, error) {
	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	for _, store := range stores {
		store.Usable = s.tracker.Status(store.StoreID) == domain.CredentialStatusUsable
	}

	return stores, nil
}

func (s *Service) Use(ctx context.Context, storeID string) error {
	return s.stores.TouchLastUsed(ctx, storeID, s.now().UTC())
}

// Export devolve as lojas sem nenhum segredo.
func (s *Service) Export(ctx context.Context) ([]*domain.StoreExport, error) {
	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	exports := make([]*domain.StoreExport, 0, len(stores))
	for _, store := range stores {
		exports = append(exports, &domain.StoreExport{
			StoreID:           store.StoreID,
			Name:              store.Name,
			Domain:            store.Domain,
			CustomerID:        store.CustomerID,
			ManagerCustomerID: store.ManagerCustomerID,
			GA4PropertyID:     store.GA4PropertyID,
			AccessLevel:       store.AccessLevel,
			CatalogURL:        store.CatalogURL,
			CreatedAt:         store.CreatedAt,
			LastUsed:          store.LastUsed,
		})
	}

	return exports, nil
}

func (s *Service) ProductCount(ctx context.Context, storeID string) (int, error) {
	profile, err := s.stores.GetProfile(ctx, storeID)
	if err != nil {
		return 0, err
	}

	return s.refreshProductCount(ctx, profile)
}

func (s *Service) refreshProductCount(ctx context.Context, profile *domain.StoreProfile) (int, error) {
	if !profile.HasCatalog() {
		return 0, ErrCatalogNotConfigured
	}

	count, err := s.counter.CountProducts(ctx, profile)
	if err != nil {
		return 0, err
	}

	if err := s.stores.UpdateProductCount(ctx, profile.StoreID, count); err != nil {
		return 0, err
	}

	return count, nil
}

// SyncProductCounts atualiza a contagem de todas as lojas com catálogo. Falhas de uma loja
// são registradas e não interrompem as demais.
func (s *Service) SyncProductCounts(ctx context.Context) (int, error) {
	ids, err := s.stores.ListStoreIDs(ctx)
	if err != nil {
		return 0, err
	}

	var synced int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			logger := log.ForStore(gctx, id)

			profile, err := s.stores.GetProfile(gctx, id)
			if err != nil {
				logger.WithError(err).Warn("Erro ao carregar a loja para sincronizar o catálogo")
				return nil
			}

			count, err := s.refreshProductCount(gctx, profile)
			if errors.Is(err, ErrCatalogNotConfigured) {
				return nil
			}
			if err != nil {
				logger.WithError(err).Warn("Erro ao sincronizar a contagem de produtos")
				return nil
			}

			atomic.AddInt32(&synced, 1)
			logger.Debugf("Contagem de produtos atualizada: %d", count)
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return int(synced), err
	}

	return int(synced), nil
}

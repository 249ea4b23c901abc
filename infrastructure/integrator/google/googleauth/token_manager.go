// Package googleauth troca refresh tokens por access tokens e mantém o cache por loja.
package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/metrics"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

// HTTPDoer permite trocar o cliente HTTP nos testes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenManager mantém um access token por loja. Requisições simultâneas da mesma loja
// compartilham uma única troca; lojas com refresh token rejeitado ficam marcadas como
// inutilizáveis até Forget.
type TokenManager struct {
	tokenURL        string
	exchangeTimeout time.Duration
	safetyMargin    time.Duration
	httpClient      HTTPDoer
	metrics         metrics.Recorder
	now             func() time.Time

	mu         sync.Mutex
	tokens     map[string]*domain.AccessToken
	unusable   map[string]*domain.ReportError
	generation map[string]uint64
	group      singleflight.Group
}

func NewTokenManager(cfg *config.Config, httpClient HTTPDoer, recorder metrics.Recorder) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.GoogleOAuth.ExchangeTimeout}
	}
	if recorder == nil {
		recorder = metrics.Noop()
	}

	return &TokenManager{
		tokenURL:        cfg.GoogleOAuth.TokenURL,
		exchangeTimeout: cfg.GoogleOAuth.ExchangeTimeout,
		safetyMargin:    cfg.TokenCache.SafetyMargin,
		httpClient:      httpClient,
		metrics:         recorder,
		now:             time.Now,
		tokens:          make(map[string]*domain.AccessToken),
		unusable:        make(map[string]*domain.ReportError),
		generation:      make(map[string]uint64),
	}
}

// ObtainAccessToken devolve um access token válido para a loja, trocando o refresh token
// apenas quando o cache expirou. O refresh token nunca é alterado.
func (tm *TokenManager) ObtainAccessToken(ctx context.Context, cred *domain.StoreCredential) (*domain.AccessToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tm.mu.Lock()
	if reason, flagged := tm.unusable[cred.StoreID]; flagged {
		tm.mu.Unlock()
		return nil, reason
	}
	if token, ok := tm.tokens[cred.StoreID]; ok && token.ValidAt(tm.now(), tm.safetyMargin) {
		tm.mu.Unlock()
		tm.metrics.IncTokenCacheHit()
		cp := *token
		return &cp, nil
	}
	gen := tm.generation[cred.StoreID]
	tm.mu.Unlock()

	// A troca roda num contexto próprio: se quem iniciou cancelar, os demais que aguardam a
	// mesma chave continuam recebendo o resultado e o token ainda entra no cache.
	exchangeCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%s#%d", cred.StoreID, gen)
	ch := tm.group.DoChan(key, func() (interface{}, error) {
		return tm.exchange(exchangeCtx, cred, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		cp := *res.Val.(*domain.AccessToken)
		return &cp, nil
	}
}

func (tm *TokenManager) exchange(ctx context.Context, cred *domain.StoreCredential, gen uint64) (*domain.AccessToken, error) {
	tm.mu.Lock()
	if token, ok := tm.tokens[cred.StoreID]; ok && token.ValidAt(tm.now(), tm.safetyMargin) {
		tm.mu.Unlock()
		return token, nil
	}
	tm.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, tm.exchangeTimeout)
	defer cancel()

	token, err := tm.requestToken(ctx, cred)

	tm.mu.Lock()
	defer tm.mu.Unlock()

	stale := tm.generation[cred.StoreID] != gen

	if err != nil {
		tm.metrics.IncTokenExchange(string(domain.KindOf(err)))

		if re, ok := domain.AsReportError(err); ok && re.Kind == domain.KindCredentialInvalid && re.Code == codeGrantRejected && !stale {
			tm.unusable[cred.StoreID] = re
			delete(tm.tokens, cred.StoreID)
			log.ForStore(ctx, cred.StoreID).WithFields(log.Fields{
				"kind":      re.Kind,
				"client_id": log.Mask(cred.ClientID),
			}).Warn("googleauth: refresh token rejeitado, loja marcada como inutilizável")
		}
		return nil, err
	}

	tm.metrics.IncTokenExchange("ok")

	// Credenciais reenviadas durante a troca: devolve o token mas não guarda no cache
	if !stale {
		tm.tokens[cred.StoreID] = token
	}

	log.ForStore(ctx, cred.StoreID).
		WithField("expires_at", token.ExpiresAt.Format(time.RFC3339)).
		Debug("googleauth: access token renovado")

	return token, nil
}

// Forget descarta o token e a marcação de inutilizável da loja. Chamado quando o operador
// reenvia ou remove as credenciais.
func (tm *TokenManager) Forget(storeID string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	delete(tm.tokens, storeID)
	delete(tm.unusable, storeID)
	tm.generation[storeID]++
}

// Invalidate descarta só o access token em cache, depois que uma fonte o recusou. A próxima
// chamada faz uma troca nova; se o refresh token também tiver sido revogado, é essa troca
// que marca a loja como inutilizável.
func (tm *TokenManager) Invalidate(storeID string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	delete(tm.tokens, storeID)
}

// Status indica se a loja ainda pode trocar tokens.
func (tm *TokenManager) Status(storeID string) domain.CredentialStatus {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, flagged := tm.unusable[storeID]; flagged {
		return domain.CredentialStatusUnusable
	}
	return domain.CredentialStatusUsable
}

package googleauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// codeGrantRejected marca as falhas que invalidam a loja até o operador reenviar credenciais.
const codeGrantRejected = "GrantRejected"

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Erros OAuth que significam refresh token revogado ou par client_id/secret errado
var rejectedGrantErrors = map[string]struct{}{
	"invalid_grant":       {},
	"invalid_client":      {},
	"unauthorized_client": {},
}

func (tm *TokenManager) requestToken(ctx context.Context, cred *domain.StoreCredential) (*domain.AccessToken, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", cred.RefreshToken)
	form.Set("client_id", cred.ClientID)
	form.Set("client_secret", cred.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewTransientError("erro ao criar a requisição de token", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	issuedAt := tm.now()

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransientError("erro de rede na troca do refresh token", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransientError("erro ao ler a resposta do endpoint de token", err)
	}

	var payload tokenResponse
	if len(body) > 0 {
		// Corpo inválido em 5xx é comum (páginas HTML de proxy); a classificação usa o status
		_ = json.Unmarshal(body, &payload)
	}

	if resp.StatusCode == http.StatusOK && payload.AccessToken != "" {
		expiresIn := time.Duration(payload.ExpiresIn) * time.Second
		if expiresIn <= 0 {
			expiresIn = time.Hour
		}
		return &domain.AccessToken{
			Value:     payload.AccessToken,
			ExpiresAt: issuedAt.Add(expiresIn),
		}, nil
	}

	return nil, classifyTokenError(resp.StatusCode, payload)
}

func classifyTokenError(status int, payload tokenResponse) error {
	detail := payload.Error
	if payload.ErrorDescription != "" {
		detail = fmt.Sprintf("%s: %s", payload.Error, payload.ErrorDescription)
	}

	switch {
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return domain.NewTransientError(fmt.Sprintf("endpoint de token respondeu %d", status), nil)
	case status == http.StatusOK:
		return domain.NewTransientError("resposta de token sem access_token", nil)
	}

	if _, rejected := rejectedGrantErrors[payload.Error]; rejected {
		re := domain.NewCredentialInvalidError("refresh token rejeitado ("+detail+"), reenvie as credenciais da loja", nil)
		re.Code = codeGrantRejected
		return re
	}

	return domain.NewCredentialInvalidError(fmt.Sprintf("troca de token recusada com status %d: %s", status, detail), nil)
}

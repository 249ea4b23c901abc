package domain

import "time"

// AccessToken é o token de curta duração derivado do refresh token. Nunca é persistido.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// ValidAt indica se o token ainda pode ser usado em now, descontada a margem de segurança.
func (t *AccessToken) ValidAt(now time.Time, margin time.Duration) bool {
	if t == nil || t.Value == "" {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-margin))
}

type CredentialStatus string

const (
	CredentialStatusUsable   CredentialStatus = "usable"
	CredentialStatusUnusable CredentialStatus = "unusable"
)

// AccountContext descreve a conta alvo de uma consulta.
// LoginCustomerID só é enviado ao Google Ads.
type AccountContext struct {
	CustomerID      string
	LoginCustomerID string
	PropertyID      string
	DeveloperToken  string
}

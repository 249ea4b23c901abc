package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrStoreAlreadyExists = errors.New("já existe uma loja com esse nome")

type AccessLevel string

const (
	AccessLevelTest     AccessLevel = "test"
	AccessLevelStandard AccessLevel = "standard"
)

func (a AccessLevel) IsValid() bool {
	return a == AccessLevelTest || a == AccessLevelStandard
}

// StoreCredential guarda os segredos de uma loja. Apenas o repositório persiste esse valor;
// os demais componentes recebem uma cópia válida durante a requisição.
type StoreCredential struct {
	StoreID           string      `json:"store_id"`
	CustomerID        string      `json:"customer_id" validate:"required|customerID"`
	DeveloperToken    string      `json:"developer_token" validate:"required"`
	ClientID          string      `json:"client_id" validate:"required"`
	ClientSecret      string      `json:"client_secret" validate:"required"`
	RefreshToken      string      `json:"refresh_token" validate:"required"`
	ManagerCustomerID string      `json:"manager_customer_id,omitempty" validate:"customerID"`
	GA4PropertyID     string      `json:"ga4_property_id,omitempty" validate:"digitsOnly"`
	AccessLevel       AccessLevel `json:"access_level" validate:"required|accessLevel"`
}

// Normalize remove separadores dos ids numéricos.
func (c *StoreCredential) Normalize() {
	c.CustomerID = NormalizeCustomerID(c.CustomerID)
	c.ManagerCustomerID = NormalizeCustomerID(c.ManagerCustomerID)
	c.GA4PropertyID = NormalizeCustomerID(c.GA4PropertyID)
	c.DeveloperToken = strings.TrimSpace(c.DeveloperToken)
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.ClientSecret = strings.TrimSpace(c.ClientSecret)
	c.RefreshToken = strings.TrimSpace(c.RefreshToken)
	if c.AccessLevel == "" {
		c.AccessLevel = AccessLevelStandard
	}
}

// Redacted devolve uma cópia com os segredos mascarados, mantendo os 4 últimos caracteres.
func (c *StoreCredential) Redacted() *StoreCredential {
	cp := *c
	cp.DeveloperToken = mask(c.DeveloperToken)
	cp.ClientID = mask(c.ClientID)
	cp.ClientSecret = mask(c.ClientSecret)
	cp.RefreshToken = mask(c.RefreshToken)
	return &cp
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return "****" + secret[len(secret)-4:]
}

func (c *StoreCredential) HasManager() bool {
	return c.ManagerCustomerID != ""
}

// StoreProfile são os dados não sensíveis da loja.
type StoreProfile struct {
	StoreID           string     `json:"store_id"`
	Name              string     `json:"name" validate:"required|maxLen:120"`
	Domain            string     `json:"domain"`
	CatalogURL        string     `json:"catalog_url,omitempty" validate:"fullUrl"`
	CatalogCountField string     `json:"catalog_count_field,omitempty"`
	CatalogKey        string     `json:"catalog_key,omitempty"`
	CatalogSecret     string     `json:"catalog_secret,omitempty"`
	ProductCount      *int       `json:"product_count,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	LastUsed          *time.Time `json:"last_used,omitempty"`
}

func (p *StoreProfile) HasCatalog() bool {
	return p.CatalogURL != ""
}

// StoreSummary é a visão de listagem de uma loja.
type StoreSummary struct {
	*StoreProfile
	CustomerID        string      `json:"customer_id"`
	ManagerCustomerID string      `json:"manager_customer_id,omitempty"`
	GA4PropertyID     string      `json:"ga4_property_id,omitempty"`
	AccessLevel       AccessLevel `json:"access_level"`
	HasAds            bool        `json:"has_ads"`
	HasGA4            bool        `json:"has_ga4"`
	Usable            bool        `json:"usable"`
}

// StoreExport é a exportação de uma loja sem segredos.
type StoreExport struct {
	StoreID           string      `json:"store_id"`
	Name              string      `json:"name"`
	Domain            string      `json:"domain"`
	CustomerID        string      `json:"customer_id"`
	ManagerCustomerID string      `json:"manager_customer_id,omitempty"`
	GA4PropertyID     string      `json:"ga4_property_id,omitempty"`
	AccessLevel       AccessLevel `json:"access_level"`
	CatalogURL        string      `json:"catalog_url,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	LastUsed          *time.Time  `json:"last_used,omitempty"`
}

type RegisterStoreRequest struct {
	Profile    StoreProfile    `json:"profile"`
	Credential StoreCredential `json:"credential"`
}

// NormalizeCustomerID remove hífens e espaços: "123-456-7890" vira "1234567890".
// Outros caracteres são mantidos para que a validação os rejeite.
func NormalizeCustomerID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, id)
}

func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsCustomerID indica se o valor é um id de cliente normalizado (10 dígitos).
func IsCustomerID(s string) bool {
	return len(s) == 10 && IsDigits(s)
}

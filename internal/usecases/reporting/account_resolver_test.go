package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

func TestResolveAccount(t *testing.T) {
	direct := &domain.StoreCredential{
		StoreID:        "loja01",
		CustomerID:     "1234567890",
		DeveloperToken: "dev",
		GA4PropertyID:  "321654987",
	}
	managed := &domain.StoreCredential{
		StoreID:           "loja02",
		CustomerID:        "1234567890",
		ManagerCustomerID: "9876543210",
		DeveloperToken:    "dev",
	}

	tests := []struct {
		name      string
		cred      *domain.StoreCredential
		requested string
		expected  *domain.AccountContext
		code      string
	}{
		{
			name: "conta própria sem gerenciadora",
			cred: direct,
			expected: &domain.AccountContext{
				CustomerID:     "1234567890",
				PropertyID:     "321654987",
				DeveloperToken: "dev",
			},
		},
		{
			name:      "subconta com hífens sob gerenciadora",
			cred:      managed,
			requested: "555-666-7777",
			expected: &domain.AccountContext{
				CustomerID:      "5556667777",
				LoginCustomerID: "9876543210",
				PropertyID:      "5556667777",
				DeveloperToken:  "dev",
			},
		},
		{
			name:      "mesma conta informada explicitamente",
			cred:      direct,
			requested: "123-456-7890",
			expected: &domain.AccountContext{
				CustomerID:     "1234567890",
				PropertyID:     "321654987",
				DeveloperToken: "dev",
			},
		},
		{
			name:      "id com letras é rejeitado",
			cred:      managed,
			requested: "12345abc90",
			code:      domain.CodeInvalidAccountID,
		},
		{
			name:      "subconta sem gerenciadora é rejeitada",
			cred:      direct,
			requested: "5556667777",
			code:      domain.CodeInvalidAccountID,
		},
		{
			name: "credencial com customer_id vazio",
			cred: &domain.StoreCredential{StoreID: "loja03"},
			code: domain.CodeInvalidAccountID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, re := ResolveAccount(tt.cred, tt.requested)

			if tt.code != "" {
				require.NotNil(t, re)
				assert.Equal(t, domain.KindValidation, re.Kind)
				assert.Equal(t, tt.code, re.Code)
				assert.Nil(t, account)
				return
			}

			require.Nil(t, re)
			assert.Equal(t, tt.expected, account)
		})
	}
}

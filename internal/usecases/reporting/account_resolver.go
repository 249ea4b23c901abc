package reporting

import (
	"fmt"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// ResolveAccount escolhe a conta consultada. Sem requestedCustomerID usa a própria conta da
// loja; outra conta só é aceita quando a loja acessa por uma conta gerenciadora, que vira o
// login-customer-id do Google Ads.
func ResolveAccount(cred *domain.StoreCredential, requestedCustomerID string) (*domain.AccountContext, *domain.ReportError) {
	target := domain.NormalizeCustomerID(cred.CustomerID)

	if requestedCustomerID != "" {
		requested := domain.NormalizeCustomerID(requestedCustomerID)
		if !domain.IsDigits(requested) {
			return nil, domain.NewValidationError("customer_id", domain.CodeInvalidAccountID,
				fmt.Sprintf("customer_id deve conter apenas dígitos, recebido %q", requestedCustomerID))
		}
		if requested != target && !cred.HasManager() {
			return nil, domain.NewValidationError("customer_id", domain.CodeInvalidAccountID,
				fmt.Sprintf("loja sem conta gerenciadora não pode consultar a conta %s", requested))
		}
		target = requested
	}

	if !domain.IsDigits(target) {
		return nil, domain.NewValidationError("customer_id", domain.CodeInvalidAccountID,
			"customer_id da loja vazio ou com caracteres inválidos")
	}

	account := &domain.AccountContext{
		CustomerID:     target,
		PropertyID:     cred.GA4PropertyID,
		DeveloperToken: cred.DeveloperToken,
	}
	if account.PropertyID == "" {
		account.PropertyID = target
	}
	if cred.HasManager() {
		account.LoginCustomerID = domain.NormalizeCustomerID(cred.ManagerCustomerID)
	}

	return account, nil
}

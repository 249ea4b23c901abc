package managing

import "errors"

var (
	ErrCatalogNotConfigured = errors.New("loja sem API de catálogo configurada")
	ErrGenerateID           = errors.New("erro ao gerar o id da loja")
	ErrSameManagerCustomer  = errors.New("manager_customer_id deve ser diferente de customer_id")
)

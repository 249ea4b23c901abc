package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação do operador
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrOperatorDisabled      = "AUTH_002" // Operador desativado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrOperatorAlreadyExists = "AUTH_009" // Operador já existe

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidAccountID    = "VAL_004" // Id de conta inválido
	ErrRouteNotFound       = "VAL_005" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_006" // Método não aceito pela rota

	// Erros de loja e de fontes de dados
	ErrStoreNotFound           = "STO_001" // Loja não encontrada
	ErrCredentialInvalid       = "STO_002" // Refresh token rejeitado, credenciais precisam ser reenviadas
	ErrPermissionDenied        = "STO_003" // Identidade sem acesso ao customer id
	ErrAccessLevelInsufficient = "STO_004" // Developer token sem acesso de produção
	ErrSourceUnavailable       = "STO_005" // Fonte indisponível após as tentativas
	ErrCatalogNotConfigured    = "STO_006" // Loja sem catálogo configurado
	ErrStoreAlreadyExists      = "STO_007" // Nome de loja já cadastrado

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:      http.StatusUnauthorized,
	ErrOperatorDisabled:        http.StatusForbidden,
	ErrInvalidToken:            http.StatusUnauthorized,
	ErrInsufficientPrivilege:   http.StatusForbidden,
	ErrOperatorAlreadyExists:   http.StatusConflict,
	ErrInvalidRequest:          http.StatusBadRequest,
	ErrMissingRequiredData:     http.StatusBadRequest,
	ErrInvalidFormat:           http.StatusBadRequest,
	ErrInvalidAccountID:        http.StatusBadRequest,
	ErrRouteNotFound:           http.StatusNotFound,
	ErrMethodNotAllowed:        http.StatusMethodNotAllowed,
	ErrStoreNotFound:           http.StatusNotFound,
	ErrCredentialInvalid:       http.StatusConflict,
	ErrPermissionDenied:        http.StatusForbidden,
	ErrAccessLevelInsufficient: http.StatusForbidden,
	ErrSourceUnavailable:       http.StatusServiceUnavailable,
	ErrCatalogNotConfigured:    http.StatusUnprocessableEntity,
	ErrStoreAlreadyExists:      http.StatusConflict,
	ErrInternalServer:          http.StatusInternalServerError,
	ErrDatabaseOperation:       http.StatusInternalServerError,
	ErrExternalService:         http.StatusBadGateway,
	ErrCommunication:           http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Status devolve o status HTTP do código; códigos desconhecidos viram 500.
func Status(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(Status(code))
	json.NewEncoder(w).Encode(apiErr)
}

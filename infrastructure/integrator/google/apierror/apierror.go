// Package apierror classifica as respostas de erro das APIs do Google (GA4 e Google Ads).
package apierror

import (
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// Body é o envelope de erro comum às APIs REST do Google.
type Body struct {
	Error struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Status  string          `json:"status"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// Códigos do Google Ads que indicam developer token sem nível de acesso suficiente
var accessLevelCodes = []string{
	"DEVELOPER_TOKEN_NOT_APPROVED",
	"DEVELOPER_TOKEN_PROHIBITED",
	"DEVELOPER_TOKEN_NOT_ON_ALLOWLIST",
}

// Parse decodifica o corpo de erro; corpos fora do envelope devolvem Body vazio.
func Parse(raw []byte) Body {
	var body Body
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	return body
}

// Classify converte status HTTP e corpo de erro em um ReportError. customerID identifica
// a conta consultada nas falhas de permissão.
func Classify(source domain.Source, status int, raw []byte, customerID string) *domain.ReportError {
	body := Parse(raw)
	message := body.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}

	details := string(body.Error.Details)
	for _, code := range accessLevelCodes {
		if strings.Contains(details, code) || strings.Contains(message, code) {
			return domain.NewAccessLevelError(customerID,
				fmt.Sprintf("developer token sem acesso à conta: %s", code), nil).WithSource(source)
		}
	}

	var re *domain.ReportError
	switch {
	case status == http.StatusUnauthorized || body.Error.Status == "UNAUTHENTICATED":
		re = domain.NewCredentialInvalidError("access token recusado: "+message, nil)
		re.Code = domain.CodeAccessTokenRejected
	case status == http.StatusForbidden || body.Error.Status == "PERMISSION_DENIED":
		re = domain.NewPermissionDeniedError(customerID, "sem permissão para a conta: "+message, nil)
	case status == http.StatusTooManyRequests || body.Error.Status == "RESOURCE_EXHAUSTED":
		re = domain.NewTransientError("cota excedida: "+message, nil)
	case status >= http.StatusInternalServerError:
		re = domain.NewTransientError(fmt.Sprintf("fonte respondeu %d: %s", status, message), nil)
	case status == http.StatusBadRequest:
		re = domain.NewReportError(domain.KindValidation, "consulta rejeitada pela fonte: "+message, nil)
	default:
		re = domain.NewReportError(domain.KindUnknown, fmt.Sprintf("resposta inesperada %d: %s", status, message), nil)
	}

	return re.WithSource(source)
}

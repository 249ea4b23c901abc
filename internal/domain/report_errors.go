package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindCredentialInvalid       ErrorKind = "credential_invalid"
	KindPermissionDenied        ErrorKind = "permission_denied"
	KindAccessLevelInsufficient ErrorKind = "access_level_insufficient"
	KindTransient               ErrorKind = "transient"
	KindValidation              ErrorKind = "validation"
	KindPartialResult           ErrorKind = "partial_result"
	KindUnknown                 ErrorKind = "unknown"
)

// Códigos de validação expostos ao chamador
const (
	CodeInvalidAccountID = "InvalidAccountId"
	CodeUnknownDimension = "UnknownDimension"
	CodeUnknownMetric    = "UnknownMetric"
	CodeInvalidDateRange = "InvalidDateRange"
	CodeInvalidSource    = "InvalidSource"
	CodeMissingField     = "MissingField"
	CodeInvalidField     = "InvalidField"
)

// CodeAccessTokenRejected marca o 401 de uma fonte: o access token em cache não vale mais,
// mas o refresh token ainda pode valer.
const CodeAccessTokenRejected = "AccessTokenRejected"

var (
	ErrStoreNotFound    = errors.New("loja não encontrada")
	ErrAllSourcesFailed = errors.New("todas as fontes falharam")
)

// ReportError é um erro classificado de consulta ou de credencial.
type ReportError struct {
	Kind       ErrorKind `json:"kind"`
	Source     Source    `json:"source,omitempty"`
	CustomerID string    `json:"customer_id,omitempty"`
	Field      string    `json:"field,omitempty"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	Err        error     `json:"-"`
}

func (e *ReportError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Source != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Source)
	}
	if e.CustomerID != "" {
		msg = fmt.Sprintf("%s (customer_id=%s)", msg, e.CustomerID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func (e *ReportError) Retryable() bool {
	return e.Kind == KindTransient
}

func NewReportError(kind ErrorKind, message string, err error) *ReportError {
	return &ReportError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(field, code, message string) *ReportError {
	return &ReportError{Kind: KindValidation, Field: field, Code: code, Message: message}
}

func NewCredentialInvalidError(message string, err error) *ReportError {
	return &ReportError{Kind: KindCredentialInvalid, Message: message, Err: err}
}

func NewTransientError(message string, err error) *ReportError {
	return &ReportError{Kind: KindTransient, Message: message, Err: err}
}

func NewPermissionDeniedError(customerID, message string, err error) *ReportError {
	return &ReportError{Kind: KindPermissionDenied, CustomerID: customerID, Message: message, Err: err}
}

func NewAccessLevelError(customerID, message string, err error) *ReportError {
	return &ReportError{Kind: KindAccessLevelInsufficient, CustomerID: customerID, Message: message, Err: err}
}

// WithSource devolve uma cópia marcada com a fonte.
func (e *ReportError) WithSource(source Source) *ReportError {
	cp := *e
	cp.Source = source
	return &cp
}

// AsReportError extrai o erro classificado da cadeia.
func AsReportError(err error) (*ReportError, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if re, ok := AsReportError(err); ok {
		return re.Kind
	}
	return KindUnknown
}

// IsAccessTokenRejected indica que vale descartar o token em cache e trocar de novo.
func IsAccessTokenRejected(err error) bool {
	re, ok := AsReportError(err)
	return ok && re.Kind == KindCredentialInvalid && re.Code == CodeAccessTokenRejected
}

func IsRetryable(err error) bool {
	return KindOf(err) == KindTransient
}

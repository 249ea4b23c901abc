package handler

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/authenticating"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/managing"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/apiErrors"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

// writeServiceError traduz os erros dos casos de uso para a resposta padronizada.
// Erros não classificados viram 500 com a mensagem de fallback.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if re, ok := domain.AsReportError(err); ok {
		apiErrors.WriteError(w, reportErrorCode(re), err.Error(), re)
		return
	}

	var authErr *authenticating.AuthError
	switch {
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)

	case errors.Is(err, domain.ErrStoreNotFound):
		apiErrors.WriteError(w, apiErrors.ErrStoreNotFound, "Loja não encontrada", nil)

	case errors.Is(err, domain.ErrStoreAlreadyExists):
		apiErrors.WriteError(w, apiErrors.ErrStoreAlreadyExists, err.Error(), nil)

	case errors.Is(err, managing.ErrCatalogNotConfigured):
		apiErrors.WriteError(w, apiErrors.ErrCatalogNotConfigured, err.Error(), nil)

	case errors.Is(err, domain.ErrEmptyNarrative):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)

	case errors.Is(err, context.DeadlineExceeded):
		apiErrors.WriteError(w, apiErrors.ErrCommunication, "Tempo esgotado aguardando o serviço externo", nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func reportErrorCode(re *domain.ReportError) string {
	switch re.Kind {
	case domain.KindValidation:
		switch re.Code {
		case domain.CodeInvalidAccountID:
			return apiErrors.ErrInvalidAccountID
		case domain.CodeMissingField:
			return apiErrors.ErrMissingRequiredData
		}
		return apiErrors.ErrInvalidFormat
	case domain.KindCredentialInvalid:
		return apiErrors.ErrCredentialInvalid
	case domain.KindPermissionDenied:
		return apiErrors.ErrPermissionDenied
	case domain.KindAccessLevelInsufficient:
		return apiErrors.ErrAccessLevelInsufficient
	case domain.KindTransient:
		return apiErrors.ErrSourceUnavailable
	}
	return apiErrors.ErrExternalService
}

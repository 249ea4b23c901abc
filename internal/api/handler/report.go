package handler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/insighting"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/reporting"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/apiErrors"
)

// CreateReport executa o relatório. Um relatório parcial é 200 com partial=true; quando todas
// as fontes falham o erro vem com o relatório nos detalhes.
func CreateReport(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeReportRequest(w, r)
		if !ok {
			return
		}

		report, err := reporter.Execute(r.Context(), req)
		if err != nil {
			writeReportFailure(w, r, report, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func CreateInsights(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeReportRequest(w, r)
		if !ok {
			return
		}

		insights, err := service.Insights(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar insights")
			return
		}

		writeJSON(w, http.StatusOK, insights)
	}
}

// GetStoreAnalysis devolve a análise combinada GA4 + Google Ads do período.
func GetStoreAnalysis(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateRange, err := dateRangeFromQuery(r)
		if err != nil {
			writeServiceError(w, r, err, "Período inválido")
			return
		}

		analysis, err := service.Analyze(r.Context(), storeIDFromPath(r), dateRange)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular a análise")
			return
		}

		writeJSON(w, http.StatusOK, analysis)
	}
}

func decodeReportRequest(w http.ResponseWriter, r *http.Request) (*domain.ReportRequest, bool) {
	var body ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return nil, false
	}

	req, err := body.toDomain()
	if err != nil {
		writeServiceError(w, r, err, "Requisição inválida")
		return nil, false
	}

	return req, true
}

func writeReportFailure(w http.ResponseWriter, r *http.Request, report *domain.Report, err error) {
	if report == nil || !errors.Is(err, domain.ErrAllSourcesFailed) {
		writeServiceError(w, r, err, "Erro ao gerar relatório")
		return
	}

	code := apiErrors.ErrSourceUnavailable
	if re, ok := domain.AsReportError(err); ok {
		code = reportErrorCode(re)
	}
	apiErrors.WriteError(w, code, err.Error(), report)
}

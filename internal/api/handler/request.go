package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

// ReportRequest é o corpo aceito por /v1/reports e /v1/reports/insights.
type ReportRequest struct {
	StoreID    string   `json:"store_id"`
	Source     string   `json:"source"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Dimensions []string `json:"dimensions"`
	Metrics    []string `json:"metrics"`
	CustomerID string   `json:"customer_id,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

func (req *ReportRequest) toDomain() (*domain.ReportRequest, error) {
	dateRange, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	return &domain.ReportRequest{
		StoreID:    strings.TrimSpace(req.StoreID),
		Source:     domain.Source(strings.ToLower(strings.TrimSpace(req.Source))),
		DateRange:  dateRange,
		Dimensions: req.Dimensions,
		Metrics:    req.Metrics,
		CustomerID: req.CustomerID,
		Limit:      req.Limit,
	}, nil
}

// parseDateRange exige as duas datas no formato AAAA-MM-DD.
func parseDateRange(startStr, endStr string) (domain.DateRange, error) {
	start, err := parseDate("start_date", startStr)
	if err != nil {
		return domain.DateRange{}, err
	}

	end, err := parseDate("end_date", endStr)
	if err != nil {
		return domain.DateRange{}, err
	}

	return domain.NewDateRange(start, end), nil
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domain.NewValidationError(field, domain.CodeMissingField,
			fmt.Sprintf("%s é obrigatório", field))
	}

	date, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, domain.CodeInvalidDateRange,
			fmt.Sprintf("%s deve estar no formato AAAA-MM-DD", field))
	}

	return date, nil
}

func dateRangeFromQuery(r *http.Request) (domain.DateRange, error) {
	query := r.URL.Query()
	return parseDateRange(query.Get("start_date"), query.Get("end_date"))
}

func intFromQuery(r *http.Request, field string) (int, error) {
	raw := r.URL.Query().Get(field)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(field, domain.CodeInvalidField,
			fmt.Sprintf("%s deve ser um número inteiro", field))
	}
	return v, nil
}

func storeIDFromPath(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

package handler

import (
	"net/http"
	"strings"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/ranking"
)

// GetStoreRanking atende /v1/stores/:id/ranking?kind=revenue|sales|views|combined.
func GetStoreRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		kind := domain.RankingKind(strings.ToLower(query.Get("kind")))
		if kind == "" {
			kind = domain.RankingRevenue
		}

		dateRange, err := dateRangeFromQuery(r)
		if err != nil {
			writeServiceError(w, r, err, "Período inválido")
			return
		}

		limit, err := intFromQuery(r, "limit")
		if err != nil {
			writeServiceError(w, r, err, "Limite inválido")
			return
		}

		source := domain.Source(strings.ToLower(query.Get("source")))

		result, err := service.GetTopProducts(r.Context(), storeIDFromPath(r), kind, dateRange, source, limit)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar o ranking da loja")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

package handler

import (
	"net/http"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/managing"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/apiErrors"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/utils"
)

type ProductCountResponse struct {
	StoreID      string `json:"store_id"`
	ProductCount int    `json:"product_count"`
}

func ListStores(service managing.StoreManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, err := service.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar lojas")
			return
		}

		writeJSON(w, http.StatusOK, stores)
	}
}

// RegisterStore cadastra a loja com perfil e credencial em objetos separados.
func RegisterStore(service managing.StoreManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterStoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		store, err := service.Register(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao cadastrar loja")
			return
		}

		writeJSON(w, http.StatusCreated, store)
	}
}

// UpdateStoreCredentials substitui a credencial da loja e devolve a versão mascarada.
func UpdateStoreCredentials(service managing.StoreManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cred domain.StoreCredential
		if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		updated, err := service.UpdateCredentials(r.Context(), storeIDFromPath(r), &cred)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar credenciais")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteStore(service managing.StoreManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Delete(r.Context(), storeIDFromPath(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover loja")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func UseStore(service managing.StoreManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Use(r.Context(), storeIDFromPath(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao registrar uso da loja")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func CountStoreProducts(service managing.StoreManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID := storeIDFromPath(r)

		count, err := service.ProductCount(r.Context(), storeID)
		if err != nil {
			log.ForStore(r.Context(), storeID).WithError(err).Warn("Erro ao contar produtos")
			writeServiceError(w, r, err, "Erro ao consultar o catálogo da loja")
			return
		}

		writeJSON(w, http.StatusOK, ProductCountResponse{StoreID: storeID, ProductCount: count})
	}
}

// ExportStores devolve o cadastro sem nenhum segredo.
func ExportStores(service managing.StoreManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stores, err := service.Export(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar lojas")
			return
		}

		body, err := utils.PrettyJson(stores)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar lojas")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="stores_export.json"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}

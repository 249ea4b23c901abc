package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func recordMiddleware(name string, calls *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*calls = append(*calls, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter(t *testing.T) {
	var calls []string

	rt := New(WithRoutes(Route{
		Path:   "/v1/stores/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, "handler")
			w.WriteHeader(http.StatusNoContent)
		}),
		Middlewares: []func(http.Handler) http.Handler{
			recordMiddleware("primeiro", &calls),
			recordMiddleware("segundo", &calls),
		},
	}))

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
		calls  []string
	}{
		{
			name:   "middlewares na ordem da lista",
			method: http.MethodGet,
			path:   "/v1/stores/loja01",
			status: http.StatusNoContent,
			calls:  []string{"primeiro", "segundo", "handler"},
		},
		{
			name:   "rota inexistente responde no formato da API",
			method: http.MethodGet,
			path:   "/v1/lojas",
			status: http.StatusNotFound,
			body:   `"code":"VAL_005"`,
		},
		{
			name:   "método não aceito",
			method: http.MethodDelete,
			path:   "/v1/stores/loja01",
			status: http.StatusMethodNotAllowed,
			body:   `"code":"VAL_006"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = nil
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.True(t, strings.Contains(rec.Body.String(), tt.body), rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
			if tt.calls != nil {
				assert.Equal(t, tt.calls, calls)
			}
		})
	}
}

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

func newTestClient(srv *httptest.Server, cacheTTL time.Duration) *Client {
	cfg := &config.Config{
		Catalog: config.Catalog{
			Timeout:        5 * time.Second,
			CacheSizeMB:    1,
			CacheTTL:       cacheTTL,
			DefaultCountBy: "count",
		},
	}
	return NewClient(cfg, srv.Client())
}

func TestCountProducts(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		field    string
		key      string
		secret   string
		handler  http.HandlerFunc
		expected int
		err      bool
	}{
		{
			name:   "cabeçalho X-WP-Total do WooCommerce",
			path:   "/wp-json/wc/v3/products?per_page=1",
			key:    "ck_abc",
			secret: "cs_def",
			handler: func(w http.ResponseWriter, r *http.Request) {
				user, pass, ok := r.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "ck_abc", user)
				assert.Equal(t, "cs_def", pass)
				w.Header().Set("X-WP-Total", "342")
				w.Write([]byte(`[{"id":1}]`))
			},
			expected: 342,
		},
		{
			name:  "campo JSON com pontos",
			path:  "/api/products",
			field: "data.meta.total",
			key:   "token-xyz",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer token-xyz", r.Header.Get("Authorization"))
				w.Write([]byte(`{"data":{"meta":{"total":128}}}`))
			},
			expected: 128,
		},
		{
			name:  "cabeçalho informado explicitamente",
			path:  "/api/products",
			field: "header:X-Total-Count",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Total-Count", "77")
				w.Write([]byte(`[]`))
			},
			expected: 77,
		},
		{
			name: "campos comuns quando não há caminho configurado",
			path: "/api/products",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"total_count":"15"}`))
			},
			expected: 15,
		},
		{
			name:  "caminho inexistente sem campos comuns",
			path:  "/api/products",
			field: "data.total",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{"items":[]}}`))
			},
			err: true,
		},
		{
			name: "status de erro",
			path: "/api/products",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			err: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient(srv, time.Minute)
			profile := &domain.StoreProfile{
				StoreID:           "loja01",
				CatalogURL:        srv.URL + tt.path,
				CatalogCountField: tt.field,
				CatalogKey:        tt.key,
				CatalogSecret:     tt.secret,
			}

			count, err := client.CountProducts(context.Background(), profile)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestCountProducts_Cache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"count":9}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, 10*time.Minute)
	profile := &domain.StoreProfile{StoreID: "loja01", CatalogURL: srv.URL + "/products"}

	for i := 0; i < 3; i++ {
		count, err := client.CountProducts(context.Background(), profile)
		require.NoError(t, err)
		assert.Equal(t, 9, count)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Cache desligado consulta sempre
	uncached := newTestClient(srv, 0)
	_, err := uncached.CountProducts(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestExpandURL(t *testing.T) {
	tests := []struct {
		name     string
		template string
		domain   string
		expected string
	}{
		{name: "sem placeholder", template: "https://a.com/api", domain: "b.com", expected: "https://a.com/api"},
		{name: "domínio sem esquema ganha https", template: "{domain}/wp-json/wc/v3/products", domain: "loja.com/", expected: "https://loja.com/wp-json/wc/v3/products"},
		{name: "domínio com esquema é mantido", template: "{domain}/api", domain: "http://loja.local", expected: "http://loja.local/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandURL(tt.template, tt.domain))
		})
	}
}

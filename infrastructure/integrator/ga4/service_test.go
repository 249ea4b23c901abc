package ga4

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ga4domain "github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/ga4/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/integrator/ga4/ga4client"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

func newIntegrator(t *testing.T, handler http.HandlerFunc) *GA4Integrator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{GA4: config.GA4{BaseURL: srv.URL, Version: "v1beta"}}
	return New(ga4client.NewClient(cfg, srv.Client()))
}

func testQuery(dimensions, metrics []string) *domain.BackendQuery {
	return &domain.BackendQuery{
		AccessToken: "ya29.token",
		Account: &domain.AccountContext{
			CustomerID:      "1234567890",
			LoginCustomerID: "9999999999",
			PropertyID:      "321654987",
		},
		DateRange:  domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)),
		Dimensions: dimensions,
		Metrics:    metrics,
	}
}

func TestQuery_RunReport(t *testing.T) {
	var received ga4domain.RunReportRequest

	integrator := newIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/properties/321654987:runReport", r.URL.Path)
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("login-customer-id"), "GA4 não recebe o id da conta gerenciadora")

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Write([]byte(`{
			"dimensionHeaders":[{"name":"date"}],
			"metricHeaders":[{"name":"sessions"},{"name":"totalRevenue"}],
			"rows":[
				{"dimensionValues":[{"value":"20240101"}],"metricValues":[{"value":"120"},{"value":"350.5"}]},
				{"dimensionValues":[{"value":"20240102"}],"metricValues":[{"value":"80"},{"value":"0"}]}
			],
			"rowCount":2
		}`))
	})

	rows, err := integrator.Query(context.Background(), testQuery([]string{"date"}, []string{"sessions", "revenue"}))
	require.NoError(t, err)

	assert.Equal(t, []ga4domain.DateRange{{StartDate: "2024-01-01", EndDate: "2024-01-07"}}, received.DateRanges)
	assert.Equal(t, []ga4domain.Dimension{{Name: "date"}}, received.Dimensions)
	assert.Equal(t, []ga4domain.Metric{{Name: "sessions"}, {Name: "totalRevenue"}}, received.Metrics)

	require.Len(t, rows, 2)
	assert.Equal(t, domain.SourceGA4, rows[0].Source)
	assert.Equal(t, "2024-01-01", rows[0].Dimensions["date"])
	assert.Equal(t, 120.0, rows[0].Metrics["sessions"])
	assert.Equal(t, 350.5, rows[0].Metrics["revenue"])
	assert.Equal(t, "2024-01-02", rows[1].Dimensions["date"])
}

func TestFactoryMetricRows_ValorNaoNumerico(t *testing.T) {
	resp := &ga4domain.RunReportResponse{
		Rows: []ga4domain.Row{
			{
				DimensionValues: []ga4domain.Value{{Value: "20240101"}},
				MetricValues:    []ga4domain.Value{{Value: "(not set)"}, {Value: "350.5"}},
			},
		},
	}

	rows := FactoryMetricRows(testQuery([]string{"date"}, []string{"sessions", "revenue"}), resp)
	require.Len(t, rows, 1)

	_, ok := rows[0].Metrics["sessions"]
	assert.False(t, ok, "valor ilegível não pode virar zero")
	assert.Equal(t, 350.5, rows[0].Metrics["revenue"])
}

func TestBuildRunReportRequest(t *testing.T) {
	tests := []struct {
		name       string
		dimensions []string
		metrics    []string
		limit      int
		expected   []string
		wantLimit  string
	}{
		{
			name:       "receita de item quando há dimensão de produto",
			dimensions: []string{"product_name"},
			metrics:    []string{"revenue", "items_purchased"},
			limit:      50,
			expected:   []string{"itemRevenue", "itemsPurchased"},
			wantLimit:  "50",
		},
		{
			name:       "receita total sem dimensão de produto",
			dimensions: []string{"date"},
			metrics:    []string{"revenue", "users"},
			expected:   []string{"totalRevenue", "totalUsers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQuery(tt.dimensions, tt.metrics)
			q.Limit = tt.limit

			req := BuildRunReportRequest(q, domain.HasItemDimension(tt.dimensions))

			names := make([]string, 0, len(req.Metrics))
			for _, m := range req.Metrics {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.expected, names)
			assert.Equal(t, tt.wantLimit, req.Limit)
		})
	}
}

func TestQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   domain.ErrorKind
	}{
		{
			name:   "permissão negada na propriedade",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"User does not have sufficient permissions for this property.","status":"PERMISSION_DENIED"}}`,
			kind:   domain.KindPermissionDenied,
		},
		{
			name:   "token expirado",
			status: http.StatusUnauthorized,
			body:   `{"error":{"code":401,"status":"UNAUTHENTICATED"}}`,
			kind:   domain.KindCredentialInvalid,
		},
		{
			name:   "indisponibilidade",
			status: http.StatusServiceUnavailable,
			body:   `{"error":{"code":503,"status":"UNAVAILABLE"}}`,
			kind:   domain.KindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator := newIntegrator(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := integrator.Query(context.Background(), testQuery([]string{"date"}, []string{"sessions"}))
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))

			re, ok := domain.AsReportError(err)
			require.True(t, ok)
			assert.Equal(t, domain.SourceGA4, re.Source)
			if tt.kind == domain.KindPermissionDenied {
				assert.Equal(t, "321654987", re.CustomerID)
			}
		})
	}
}

func TestQuery_WithoutProperty(t *testing.T) {
	integrator := New(nil)
	q := testQuery([]string{"date"}, []string{"sessions"})
	q.Account.PropertyID = ""

	_, err := integrator.Query(context.Background(), q)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

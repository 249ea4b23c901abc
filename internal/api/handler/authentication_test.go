package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/authenticating"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/usecases/authenticating/mocks"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/apiErrors"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		setup  func(m *mocks.MockAuthenticator)
		status int
		code   string
	}{
		{
			name: "login válido devolve o token",
			body: `{"email":"ana@loja.com","password":"Senha@Forte1"}`,
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().Login(gomock.Any(), "ana@loja.com", "Senha@Forte1").Return("jwt-token", nil)
			},
			status: http.StatusOK,
		},
		{
			name: "credenciais inválidas",
			body: `{"email":"ana@loja.com","password":"errada"}`,
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().Login(gomock.Any(), "ana@loja.com", "errada").
					Return("", authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, ""))
			},
			status: http.StatusUnauthorized,
			code:   apiErrors.ErrInvalidCredentials,
		},
		{
			name: "operador desativado sem AuthError",
			body: `{"email":"ana@loja.com","password":"Senha@Forte1"}`,
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return("", authenticating.ErrOperatorDisabled)
			},
			status: http.StatusForbidden,
			code:   apiErrors.ErrOperatorDisabled,
		},
		{
			name: "erro inesperado",
			body: `{"email":"ana@loja.com","password":"Senha@Forte1"}`,
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("conexão recusada"))
			},
			status: http.StatusInternalServerError,
			code:   apiErrors.ErrInternalServer,
		},
		{
			name:   "corpo inválido",
			body:   `email=ana`,
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			if tt.setup != nil {
				tt.setup(auth)
			}

			rec := serve(Authentication(auth), newRequest(http.MethodPost, "/v1/login", tt.body, 0))

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, rec).Code)
				return
			}

			var resp LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "jwt-token", resp.Token)
		})
	}
}

func TestCreateOperator(t *testing.T) {
	tests := []struct {
		name   string
		roleID int
		setup  func(m *mocks.MockAuthenticator)
		status int
	}{
		{
			name:   "administrador cadastra operador",
			roleID: domain.RoleAdmin,
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().CreateOperator(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, op *domain.Operator) (*domain.Operator, error) {
						assert.Equal(t, "Senha@Forte1", op.PasswordHash)
						assert.Equal(t, domain.RoleViewer, op.RoleID)
						return &domain.Operator{ID: 9, Name: op.Name, Email: op.Email, RoleID: op.RoleID, Active: true}, nil
					})
			},
			status: http.StatusCreated,
		},
		{
			name:   "e-mail já cadastrado",
			roleID: domain.RoleAdmin,
			setup: func(m *mocks.MockAuthenticator) {
				m.EXPECT().CreateOperator(gomock.Any(), gomock.Any()).
					Return(nil, authenticating.NewAuthError(authenticating.ErrOperatorAlreadyExists, apiErrors.ErrOperatorAlreadyExists, "bruno@loja.com"))
			},
			status: http.StatusConflict,
		},
		{
			name:   "visualizador não pode cadastrar",
			roleID: domain.RoleViewer,
			status: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			if tt.setup != nil {
				tt.setup(auth)
			}

			body := `{"name":"Bruno","email":"bruno@loja.com","password":"Senha@Forte1","role_id":2}`
			rec := serve(Authentication(auth), newRequest(http.MethodPost, "/v1/operators", body, tt.roleID))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthenticator(ctrl)
	auth.EXPECT().GetOperator(gomock.Any(), 1).Return(&domain.Operator{ID: 1, Name: "Ana", Email: "ana@loja.com"}, nil)

	rec := serve(Authentication(auth), newRequest(http.MethodGet, "/v1/me", "", domain.RoleViewer))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ana@loja.com"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

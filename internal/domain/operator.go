package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = 1
	RoleViewer = 2
)

// Operator é quem administra as lojas e consulta os relatórios.
type Operator struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password,omitempty"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	OperatorID    int    `json:"operator_id"`
	OperatorName  string `json:"operator_name"`
	OperatorEmail string `json:"operator_email"`
	RoleID        int    `json:"role_id"`
	jwt.RegisteredClaims
}

package authenticating

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/repository"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/config"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/apiErrors"
	"github.com/Chelsea-799/ga4-analytics-tool/pkg/log"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

type Authenticator interface {
	CreateOperator(ctx context.Context, operator *domain.Operator) (*domain.Operator, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetOperator(ctx context.Context, operatorID int) (*domain.Operator, error)
}

type Service struct {
	operatorRepo repository.OperatorRepository
	secret       []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

func NewService(operatorRepo repository.OperatorRepository, cfg *config.Config) *Service {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		operatorRepo: operatorRepo,
		secret:       []byte(cfg.Auth.Secret),
		tokenTTL:     ttl,
		now:          time.Now,
	}
}

// CreateOperator recebe a senha em claro em PasswordHash e grava apenas o hash bcrypt.
func (s *Service) CreateOperator(ctx context.Context, operator *domain.Operator) (*domain.Operator, error) {
	if operator.Email == "" || operator.Name == "" || operator.PasswordHash == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email, nome e senha são obrigatórios")
	}

	if err := ValidatePasswordStrength(operator.PasswordHash); err != nil {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, err.Error())
	}

	operator.Email = handleEmail(operator.Email)

	existing, err := s.operatorRepo.GetOperatorByEmail(ctx, operator.Email)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if existing != nil {
		return nil, NewAuthError(ErrOperatorAlreadyExists, apiErrors.ErrOperatorAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(operator.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if operator.RoleID == 0 {
		operator.RoleID = domain.RoleViewer
	}
	operator.PasswordHash = string(hashedPassword)
	operator.Active = true

	created, err := s.operatorRepo.CreateOperator(ctx, operator)
	if errors.Is(err, repository.ErrOperatorAlreadyExists) {
		return nil, NewAuthError(ErrOperatorAlreadyExists, apiErrors.ErrOperatorAlreadyExists, "Email já cadastrado")
	}
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar operador")
	}

	created.PasswordHash = ""
	return created, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	operator, err := s.operatorRepo.GetOperatorByEmail(ctx, handleEmail(email))
	if err != nil {
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar operador no banco de dados")
	}

	// E-mail inexistente e senha errada devolvem o mesmo erro
	if operator == nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha incorretos")
	}

	if !operator.Active {
		return "", NewOperatorAuthError(ErrOperatorDisabled, apiErrors.ErrOperatorDisabled, operator.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		return "", NewOperatorAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, operator.ID, "Email ou senha incorretos")
	}

	token, err := s.generateJWT(operator)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	log.ForContext(ctx).WithField("operator_id", operator.ID).Info("Operador autenticado")

	return token, nil
}

func (s *Service) GetOperator(ctx context.Context, operatorID int) (*domain.Operator, error) {
	operator, err := s.operatorRepo.GetOperatorByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, NewOperatorAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, operatorID, "Operador não encontrado")
	}

	operator.PasswordHash = ""
	return operator, nil
}

func (s *Service) generateJWT(operator *domain.Operator) (string, error) {
	now := s.now()
	claims := domain.Claims{
		OperatorID:    operator.ID,
		OperatorName:  operator.Name,
		OperatorEmail: operator.Email,
		RoleID:        operator.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateStrongPassword gera uma senha com pelo menos um caractere de cada classe. Usada
// pela migração para criar o administrador inicial.
func GenerateStrongPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	classes := []string{lowerChars, upperChars, numberChars, specialChars}
	allChars := strings.Join(classes, "")

	password := make([]byte, length)
	for i := range password {
		charset := allChars
		if i < len(classes) {
			charset = classes[i]
		}
		randomChar, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password[i] = randomChar
	}

	// Embaralhar a senha para que os caracteres não fiquem em ordem previsível
	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt gera um número aleatório seguro entre 0 e max-1
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// ValidatePasswordStrength exige 8 caracteres com maiúscula, minúscula, número e especial.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("a senha deve conter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	case !hasLower:
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	case !hasNumber:
		return errors.New("a senha deve conter pelo menos um número")
	case !hasSpecial:
		return errors.New("a senha deve conter pelo menos um caractere especial")
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/database/postgres"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

const operatorsTable = "operators"

var ErrOperatorAlreadyExists = errors.New("já existe um operador com esse e-mail")

type OperatorRepository interface {
	CreateOperator(ctx context.Context, operator *domain.Operator) (*domain.Operator, error)
	GetOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error)
	GetOperatorByID(ctx context.Context, operatorID int) (*domain.Operator, error)
}

type operatorRepository struct {
	conn *postgres.Connection
}

func NewOperatorRepository(conn *postgres.Connection) OperatorRepository {
	return &operatorRepository{
		conn: conn,
	}
}

func (r *operatorRepository) CreateOperator(ctx context.Context, operator *domain.Operator) (*domain.Operator, error) {
	query, args, err := squirrel.
		Insert(operatorsTable).
		Columns("name", "email", "password_hash", "active", "role_id").
		Values(operator.Name, operator.Email, operator.PasswordHash, operator.Active, operator.RoleID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&operator.ID, &operator.CreatedAt, &operator.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrOperatorAlreadyExists
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar o operador")
	}

	return operator, nil
}

// GetOperatorByEmail devolve nil sem erro quando o e-mail não existe.
func (r *operatorRepository) GetOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	return r.getOperator(ctx, squirrel.Eq{"email": email})
}

func (r *operatorRepository) GetOperatorByID(ctx context.Context, operatorID int) (*domain.Operator, error) {
	return r.getOperator(ctx, squirrel.Eq{"id": operatorID})
}

func (r *operatorRepository) getOperator(ctx context.Context, where squirrel.Eq) (*domain.Operator, error) {
	query, args, err := squirrel.
		Select("id", "name", "email", "password_hash", "active", "role_id", "created_at", "updated_at").
		From(operatorsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var operator domain.Operator
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&operator.ID,
		&operator.Name,
		&operator.Email,
		&operator.PasswordHash,
		&operator.Active,
		&operator.RoleID,
		&operator.CreatedAt,
		&operator.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar o operador")
	}

	return &operator, nil
}

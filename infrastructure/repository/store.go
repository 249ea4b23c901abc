package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Chelsea-799/ga4-analytics-tool/infrastructure/database/postgres"
	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

const (
	storesTable           = "stores"
	storeCredentialsTable = "store_credentials"

	uniqueViolation = "23505"
)

type StoreRepository interface {
	CreateStore(ctx context.Context, profile *domain.StoreProfile, cred *domain.StoreCredential) error
	UpdateCredential(ctx context.Context, cred *domain.StoreCredential) error
	DeleteStore(ctx context.Context, storeID string) error
	GetCredential(ctx context.Context, storeID string) (*domain.StoreCredential, error)
	GetProfile(ctx context.Context, storeID string) (*domain.StoreProfile, error)
	ListStoreIDs(ctx context.Context) ([]string, error)
	ListStores(ctx context.Context) ([]*domain.StoreSummary, error)
	TouchLastUsed(ctx context.Context, storeID string, at time.Time) error
	UpdateProductCount(ctx context.Context, storeID string, count int) error
}

type storeRepository struct {
	conn *postgres.Connection
	box  *SecretBox
}

func NewStoreRepository(conn *postgres.Connection, box *SecretBox) StoreRepository {
	return &storeRepository{
		conn: conn,
		box:  box,
	}
}

func (r *storeRepository) CreateStore(ctx context.Context, profile *domain.StoreProfile, cred *domain.StoreCredential) error {
	catalogKey, err := r.box.Seal(profile.CatalogKey)
	if err != nil {
		return errors.Wrap(err, "erro ao cifrar a chave do catálogo")
	}
	catalogSecret, err := r.box.Seal(profile.CatalogSecret)
	if err != nil {
		return errors.Wrap(err, "erro ao cifrar o segredo do catálogo")
	}

	storeSQL, storeArgs, err := squirrel.
		Insert(storesTable).
		Columns("id", "name", "domain", "catalog_url", "catalog_count_field", "catalog_key", "catalog_secret", "created_at").
		Values(profile.StoreID, profile.Name, profile.Domain, profile.CatalogURL, profile.CatalogCountField, catalogKey, catalogSecret, profile.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	sealed, err := r.sealCredential(cred)
	if err != nil {
		return err
	}

	credSQL, credArgs, err := squirrel.
		Insert(storeCredentialsTable).
		Columns("store_id", "customer_id", "manager_customer_id", "ga4_property_id", "access_level",
			"developer_token", "client_id", "client_secret", "refresh_token").
		Values(profile.StoreID, cred.CustomerID, cred.ManagerCustomerID, cred.GA4PropertyID, string(cred.AccessLevel),
			sealed.DeveloperToken, sealed.ClientID, sealed.ClientSecret, sealed.RefreshToken).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, storeSQL, storeArgs...); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, credSQL, credArgs...)
		return err
	})
	if isUniqueViolation(err) {
		return domain.ErrStoreAlreadyExists
	}

	return errors.Wrap(err, "erro ao cadastrar a loja")
}

// UpdateCredential substitui todos os campos da credencial; não há atualização parcial.
func (r *storeRepository) UpdateCredential(ctx context.Context, cred *domain.StoreCredential) error {
	sealed, err := r.sealCredential(cred)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update(storeCredentialsTable).
		Set("customer_id", cred.CustomerID).
		Set("manager_customer_id", cred.ManagerCustomerID).
		Set("ga4_property_id", cred.GA4PropertyID).
		Set("access_level", string(cred.AccessLevel)).
		Set("developer_token", sealed.DeveloperToken).
		Set("client_id", sealed.ClientID).
		Set("client_secret", sealed.ClientSecret).
		Set("refresh_token", sealed.RefreshToken).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"store_id": cred.StoreID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar as credenciais")
	}

	return requireAffected(result)
}

func (r *storeRepository) DeleteStore(ctx context.Context, storeID string) error {
	query, args, err := squirrel.
		Delete(storesTable).
		Where(squirrel.Eq{"id": storeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao remover a loja")
	}

	return requireAffected(result)
}

func (r *storeRepository) GetCredential(ctx context.Context, storeID string) (*domain.StoreCredential, error) {
	query, args, err := squirrel.
		Select("store_id", "customer_id", "manager_customer_id", "ga4_property_id", "access_level",
			"developer_token", "client_id", "client_secret", "refresh_token").
		From(storeCredentialsTable).
		Where(squirrel.Eq{"store_id": storeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		cred        domain.StoreCredential
		accessLevel string
	)
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&cred.StoreID,
		&cred.CustomerID,
		&cred.ManagerCustomerID,
		&cred.GA4PropertyID,
		&accessLevel,
		&cred.DeveloperToken,
		&cred.ClientID,
		&cred.ClientSecret,
		&cred.RefreshToken,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrStoreNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar as credenciais")
	}
	cred.AccessLevel = domain.AccessLevel(accessLevel)

	if err := r.openCredential(&cred); err != nil {
		return nil, errors.Wrapf(err, "erro ao decifrar as credenciais da loja %s", storeID)
	}

	return &cred, nil
}

func (r *storeRepository) GetProfile(ctx context.Context, storeID string) (*domain.StoreProfile, error) {
	query, args, err := profileSelect().
		Where(squirrel.Eq{"id": storeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	profile, err := r.scanProfile(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrStoreNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar a loja")
	}

	return profile, nil
}

func (r *storeRepository) ListStoreIDs(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("id").
		From(storesTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar as lojas")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ListStores devolve os perfis com os ids públicos da credencial; segredos não são lidos.
func (r *storeRepository) ListStores(ctx context.Context) ([]*domain.StoreSummary, error) {
	query, args, err := squirrel.
		Select("s.id", "s.name", "s.domain", "s.catalog_url", "s.catalog_count_field", "s.catalog_key",
			"s.catalog_secret", "s.product_count", "s.created_at", "s.last_used",
			"c.customer_id", "c.manager_customer_id", "c.ga4_property_id", "c.access_level", "c.developer_token <> ''").
		From(storesTable + " s").
		Join(storeCredentialsTable + " c ON c.store_id = s.id").
		OrderBy("s.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar as lojas")
	}
	defer rows.Close()

	var stores []*domain.StoreSummary
	for rows.Next() {
		var (
			summary      domain.StoreSummary
			profile      domain.StoreProfile
			productCount sql.NullInt64
			lastUsed     sql.NullTime
			accessLevel  string
			hasToken     bool
		)
		if err := rows.Scan(
			&profile.StoreID,
			&profile.Name,
			&profile.Domain,
			&profile.CatalogURL,
			&profile.CatalogCountField,
			&profile.CatalogKey,
			&profile.CatalogSecret,
			&productCount,
			&profile.CreatedAt,
			&lastUsed,
			&summary.CustomerID,
			&summary.ManagerCustomerID,
			&summary.GA4PropertyID,
			&accessLevel,
			&hasToken,
		); err != nil {
			return nil, err
		}

		// Chaves do catálogo não saem na listagem
		profile.CatalogKey = ""
		profile.CatalogSecret = ""
		applyNullable(&profile, productCount, lastUsed)

		summary.StoreProfile = &profile
		summary.AccessLevel = domain.AccessLevel(accessLevel)
		summary.HasAds = summary.CustomerID != "" && hasToken
		summary.HasGA4 = summary.GA4PropertyID != ""
		stores = append(stores, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração")
	}

	return stores, nil
}

func (r *storeRepository) TouchLastUsed(ctx context.Context, storeID string, at time.Time) error {
	return r.updateStore(ctx, storeID, "last_used", at)
}

func (r *storeRepository) UpdateProductCount(ctx context.Context, storeID string, count int) error {
	return r.updateStore(ctx, storeID, "product_count", count)
}

func (r *storeRepository) updateStore(ctx context.Context, storeID, column string, value interface{}) error {
	query, args, err := squirrel.
		Update(storesTable).
		Set(column, value).
		Where(squirrel.Eq{"id": storeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "erro ao atualizar %s", column)
	}

	return requireAffected(result)
}

func profileSelect() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "domain", "catalog_url", "catalog_count_field", "catalog_key", "catalog_secret",
			"product_count", "created_at", "last_used").
		From(storesTable)
}

func (r *storeRepository) scanProfile(row *sql.Row) (*domain.StoreProfile, error) {
	var (
		profile      domain.StoreProfile
		productCount sql.NullInt64
		lastUsed     sql.NullTime
	)
	if err := row.Scan(
		&profile.StoreID,
		&profile.Name,
		&profile.Domain,
		&profile.CatalogURL,
		&profile.CatalogCountField,
		&profile.CatalogKey,
		&profile.CatalogSecret,
		&productCount,
		&profile.CreatedAt,
		&lastUsed,
	); err != nil {
		return nil, err
	}

	var err error
	if profile.CatalogKey, err = r.box.Open(profile.CatalogKey); err != nil {
		return nil, err
	}
	if profile.CatalogSecret, err = r.box.Open(profile.CatalogSecret); err != nil {
		return nil, err
	}
	applyNullable(&profile, productCount, lastUsed)

	return &profile, nil
}

func applyNullable(profile *domain.StoreProfile, productCount sql.NullInt64, lastUsed sql.NullTime) {
	if productCount.Valid {
		count := int(productCount.Int64)
		profile.ProductCount = &count
	}
	if lastUsed.Valid {
		at := lastUsed.Time
		profile.LastUsed = &at
	}
}

func (r *storeRepository) sealCredential(cred *domain.StoreCredential) (*domain.StoreCredential, error) {
	sealed := *cred
	for _, field := range secretFields(&sealed) {
		value, err := r.box.Seal(*field)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao cifrar as credenciais")
		}
		*field = value
	}
	return &sealed, nil
}

func (r *storeRepository) openCredential(cred *domain.StoreCredential) error {
	for _, field := range secretFields(cred) {
		value, err := r.box.Open(*field)
		if err != nil {
			return err
		}
		*field = value
	}
	return nil
}

func secretFields(cred *domain.StoreCredential) []*string {
	return []*string{&cred.DeveloperToken, &cred.ClientID, &cred.ClientSecret, &cred.RefreshToken}
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

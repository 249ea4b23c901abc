package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// schema é aplicado na inicialização quando DATABASE_MIGRATE=true. Todas as instruções são
// idempotentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stores (
		id                  VARCHAR(32) PRIMARY KEY,
		name                VARCHAR(120) NOT NULL UNIQUE,
		domain              VARCHAR(255) NOT NULL DEFAULT '',
		catalog_url         TEXT NOT NULL DEFAULT '',
		catalog_count_field VARCHAR(120) NOT NULL DEFAULT '',
		catalog_key         TEXT NOT NULL DEFAULT '',
		catalog_secret      TEXT NOT NULL DEFAULT '',
		product_count       INTEGER,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_used           TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS store_credentials (
		store_id            VARCHAR(32) PRIMARY KEY REFERENCES stores(id) ON DELETE CASCADE,
		customer_id         VARCHAR(10) NOT NULL,
		manager_customer_id VARCHAR(10) NOT NULL DEFAULT '',
		ga4_property_id     VARCHAR(32) NOT NULL DEFAULT '',
		access_level        VARCHAR(16) NOT NULL DEFAULT 'standard',
		developer_token     TEXT NOT NULL,
		client_id           TEXT NOT NULL,
		client_secret       TEXT NOT NULL,
		refresh_token       TEXT NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS operators (
		id            SERIAL PRIMARY KEY,
		name          VARCHAR(120) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		role_id       INTEGER NOT NULL DEFAULT 2,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate cria as tabelas que ainda não existem.
func (c *Connection) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := c.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao aplicar a migração %d: %w", i+1, err)
		}
	}

	logrus.WithField("statements", len(schema)).Info("Schema do banco verificado")
	return nil
}

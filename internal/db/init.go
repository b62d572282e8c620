// Package db initializes the PostgreSQL connection and schema for the
// storefront backend.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// InitPostgres opens and pings a PostgreSQL connection, then ensures
// the schema exists.
func InitPostgres(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := bootstrap(context.Background(), conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func bootstrap(ctx context.Context, conn *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			phone         TEXT,
			address_line1 TEXT,
			address_line2 TEXT,
			city          TEXT,
			state         TEXT,
			pincode       TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			price          DOUBLE PRECISION NOT NULL,
			original_price DOUBLE PRECISION,
			image          TEXT,
			images         TEXT[],
			category       TEXT,
			is_new         BOOLEAN NOT NULL DEFAULT FALSE,
			is_bestseller  BOOLEAN NOT NULL DEFAULT FALSE,
			description    TEXT,
			sizes          TEXT[],
			rating         DOUBLE PRECISION,
			reviews        INTEGER,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			product_id TEXT NOT NULL,
			quantity   INTEGER NOT NULL CHECK (quantity >= 1),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL REFERENCES users(id),
			status         TEXT NOT NULL,
			subtotal       DOUBLE PRECISION NOT NULL,
			shipping       DOUBLE PRECISION NOT NULL,
			total          DOUBLE PRECISION NOT NULL,
			payment_method TEXT NOT NULL,
			full_name      TEXT NOT NULL,
			email          TEXT NOT NULL,
			phone          TEXT NOT NULL,
			address_line1  TEXT NOT NULL,
			address_line2  TEXT,
			city           TEXT NOT NULL,
			state          TEXT NOT NULL,
			pincode        TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id   TEXT NOT NULL REFERENCES orders(id),
			product_id TEXT NOT NULL,
			name       TEXT NOT NULL,
			price      DOUBLE PRECISION NOT NULL,
			quantity   INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id            INTEGER PRIMARY KEY CHECK (id = 1),
			shipping_cost DOUBLE PRECISION NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

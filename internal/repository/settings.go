package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hfdstore/storefront/internal/models"
)

// PostgresSettingsRepository stores the single store-wide settings row.
type PostgresSettingsRepository struct {
	DB *sql.DB
}

// NewPostgresSettingsRepository creates a repository over the given handle.
func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{DB: db}
}

// Get loads the settings row. Returns ErrNotFound when never written.
func (r *PostgresSettingsRepository) Get(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT shipping_cost FROM settings WHERE id = 1`,
	).Scan(&s.ShippingCost)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, ErrNotFound
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("Get settings failed: %w", err)
	}
	return s, nil
}

// Set writes the settings row, creating it when absent.
func (r *PostgresSettingsRepository) Set(ctx context.Context, s models.Settings) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO settings (id, shipping_cost) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET shipping_cost = EXCLUDED.shipping_cost`,
		s.ShippingCost,
	)
	if err != nil {
		return fmt.Errorf("Set settings failed: %w", err)
	}
	return nil
}

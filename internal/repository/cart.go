package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hfdstore/storefront/internal/models"
)

// PostgresCartRepository implements per-user cart persistence. Each
// row is a cart line keyed by a uuid line id; a user has at most one
// line per product.
type PostgresCartRepository struct {
	DB *sql.DB
}

// NewPostgresCartRepository creates a repository over the given handle.
func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{DB: db}
}

// RowsByUser returns the user's cart lines, oldest first.
func (r *PostgresCartRepository) RowsByUser(ctx context.Context, userID string) ([]models.CartRow, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, product_id, quantity
		   FROM cart_items WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("RowsByUser failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.CartRow
	for rows.Next() {
		var row models.CartRow
		if err := rows.Scan(&row.ItemID, &row.ProductID, &row.Quantity); err != nil {
			return nil, fmt.Errorf("RowsByUser scan failed: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("RowsByUser rows failed: %w", err)
	}
	return out, nil
}

// Upsert adds quantity to the user's line for the product, creating
// the line with the given id when none exists. The backend-side
// coalescing this implements is what the client's delayed refetch
// reconciles against.
func (r *PostgresCartRepository) Upsert(ctx context.Context, lineID, userID, productID string, quantity int) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		               updated_at = now()`,
		lineID, userID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("Upsert cart line failed: %w", err)
	}
	return nil
}

// UpdateQuantity sets a line's quantity. The line must belong to the
// user; returns ErrNotFound otherwise.
func (r *PostgresCartRepository) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		  WHERE id = $2 AND user_id = $1`,
		userID, lineID, quantity,
	)
	if err != nil {
		return fmt.Errorf("UpdateQuantity failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one line owned by the user.
func (r *PostgresCartRepository) Delete(ctx context.Context, userID, lineID string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM cart_items WHERE id = $2 AND user_id = $1`,
		userID, lineID,
	)
	if err != nil {
		return fmt.Errorf("Delete cart line failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes all of the user's lines.
func (r *PostgresCartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("Clear cart failed: %w", err)
	}
	return nil
}

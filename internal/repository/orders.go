package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hfdstore/storefront/internal/models"
)

// PostgresOrderRepository implements order persistence. An order and
// its items are written in one transaction.
type PostgresOrderRepository struct {
	DB *sql.DB
}

// NewPostgresOrderRepository creates a repository over the given handle.
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// Create stores the order and its item snapshots atomically.
func (r *PostgresOrderRepository) Create(ctx context.Context, userID string, o models.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create order begin failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO orders
		   (id, user_id, status, subtotal, shipping, total, payment_method,
		    full_name, email, phone, address_line1, address_line2, city, state, pincode, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		o.ID, userID, o.Status, o.Subtotal, o.Shipping, o.Total, o.PaymentMethod,
		o.ShippingAddress.FullName, o.ShippingAddress.Email, o.ShippingAddress.Phone,
		o.ShippingAddress.AddressLine1, o.ShippingAddress.AddressLine2,
		o.ShippingAddress.City, o.ShippingAddress.State, o.ShippingAddress.Pincode,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create order failed: %w", err)
	}
	for _, it := range o.Items {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO order_items (order_id, product_id, name, price, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			o.ID, it.ProductID, it.Name, it.Price, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("Create order item failed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create order commit failed: %w", err)
	}
	return nil
}

const orderColumns = `id, status, subtotal, shipping, total, payment_method,
	full_name, email, phone, address_line1, COALESCE(address_line2, ''), city, state, pincode, created_at`

func scanOrder(row interface{ Scan(...any) error }) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.Status, &o.Subtotal, &o.Shipping, &o.Total, &o.PaymentMethod,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Email, &o.ShippingAddress.Phone,
		&o.ShippingAddress.AddressLine1, &o.ShippingAddress.AddressLine2,
		&o.ShippingAddress.City, &o.ShippingAddress.State, &o.ShippingAddress.Pincode,
		&o.CreatedAt)
	return o, err
}

// ListByUser returns the user's orders, newest first, with items.
func (r *PostgresOrderRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ListByUser count failed: %w", err)
	}

	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT `+orderColumns+` FROM orders
		  WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListByUser failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ListByUser scan failed: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListByUser rows failed: %w", err)
	}
	for i := range out {
		items, err := r.itemsByOrder(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Items = items
	}
	return out, total, nil
}

// ByID loads one order with items, scoped to its owner.
func (r *PostgresOrderRepository) ByID(ctx context.Context, userID, orderID string) (models.Order, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`,
		orderID, userID,
	)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("Order ByID failed: %w", err)
	}
	o.Items, err = r.itemsByOrder(ctx, o.ID)
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *PostgresOrderRepository) itemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT product_id, name, price, quantity FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("itemsByOrder failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("itemsByOrder scan failed: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateStatus transitions an order's status (admin path; not scoped
// to a user).
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("UpdateStatus failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Revenue sums the total of all orders.
func (r *PostgresOrderRepository) Revenue(ctx context.Context) (float64, error) {
	var v float64
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(total), 0) FROM orders`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("Revenue failed: %w", err)
	}
	return v, nil
}

// CountActive counts orders not yet delivered.
func (r *PostgresOrderRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM orders WHERE status <> $1`,
		models.OrderDelivered,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountActive failed: %w", err)
	}
	return n, nil
}

// CountByDay returns per-day order counts for the trailing days window.
func (r *PostgresOrderRepository) CountByDay(ctx context.Context, days int) (map[string]int, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT to_char(created_at::date, 'YYYY-MM-DD'), COUNT(*)
		   FROM orders
		  WHERE created_at >= now() - ($1 || ' days')::interval
		  GROUP BY 1 ORDER BY 1`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("CountByDay failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]int{}
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("CountByDay scan failed: %w", err)
		}
		out[day] = n
	}
	return out, rows.Err()
}

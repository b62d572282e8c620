package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/hfdstore/storefront/internal/models"
)

// ProductFilter narrows and paginates catalog listings.
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

// PostgresProductRepository implements catalog persistence.
type PostgresProductRepository struct {
	DB *sql.DB
}

// NewPostgresProductRepository creates a repository over the given handle.
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{DB: db}
}

const productColumns = `id, name, price, COALESCE(original_price, 0), COALESCE(image, ''),
	COALESCE(images, '{}'), COALESCE(category, ''), is_new, is_bestseller,
	COALESCE(description, ''), COALESCE(sizes, '{}'), COALESCE(rating, 0), COALESCE(reviews, 0)`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	var images, sizes pq.StringArray
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Image,
		&images, &p.Category, &p.IsNew, &p.IsBestseller,
		&p.Description, &sizes, &p.Rating, &p.Reviews)
	if err != nil {
		return models.Product{}, err
	}
	p.Images = []string(images)
	p.Sizes = []string(sizes)
	return p, nil
}

// List returns products matching the filter, newest first, along with
// the unpaginated match count.
func (r *PostgresProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Category != "" {
		where = append(where, "category = "+arg(f.Category))
	}
	if f.Search != "" {
		where = append(where, "(name ILIKE "+arg("%"+f.Search+"%")+" OR description ILIKE "+arg("%"+f.Search+"%")+")")
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE `+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("List products count failed: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg((page-1)*limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("List products failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("List products scan failed: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("List products rows failed: %w", err)
	}
	return out, total, nil
}

// ByID loads a single product. Returns ErrNotFound when absent.
func (r *PostgresProductRepository) ByID(ctx context.Context, id string) (models.Product, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("Product ByID failed: %w", err)
	}
	return p, nil
}

// Create inserts a product.
func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO products
		   (id, name, price, original_price, image, images, category,
		    is_new, is_bestseller, description, sizes, rating, reviews)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Image, pq.Array(p.Images),
		p.Category, p.IsNew, p.IsBestseller, p.Description, pq.Array(p.Sizes),
		p.Rating, p.Reviews,
	)
	if err != nil {
		return fmt.Errorf("Create product failed: %w", err)
	}
	return nil
}

// Update rewrites a product. Returns ErrNotFound when absent.
func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE products
		    SET name = $2, price = $3, original_price = $4, image = $5,
		        images = $6, category = $7, is_new = $8, is_bestseller = $9,
		        description = $10, sizes = $11, rating = $12, reviews = $13
		  WHERE id = $1`,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Image, pq.Array(p.Images),
		p.Category, p.IsNew, p.IsBestseller, p.Description, pq.Array(p.Sizes),
		p.Rating, p.Reviews,
	)
	if err != nil {
		return fmt.Errorf("Update product failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product. Returns ErrNotFound when absent.
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete product failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the catalog size.
func (r *PostgresProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count products failed: %w", err)
	}
	return n, nil
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hfdstore/storefront/internal/models"
)

// ErrBadQuantity rejects cart mutations with a quantity below 1.
var ErrBadQuantity = errors.New("quantity must be at least 1")

// CartRepository defines the persistence operations required by the
// cart service.
type CartRepository interface {
	RowsByUser(ctx context.Context, userID string) ([]models.CartRow, error)
	Upsert(ctx context.Context, lineID, userID, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error
	Delete(ctx context.Context, userID, lineID string) error
	Clear(ctx context.Context, userID string) error
}

// CartService implements the per-user backend cart.
type CartService struct {
	repo CartRepository
}

// NewCartService constructs a CartService.
func NewCartService(repo CartRepository) *CartService {
	return &CartService{repo: repo}
}

// Rows returns the user's cart lines.
func (s *CartService) Rows(ctx context.Context, userID string) ([]models.CartRow, error) {
	return s.repo.RowsByUser(ctx, userID)
}

// Add merges quantity into the user's line for the product, keeping at
// most one line per product id.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	if productID == "" {
		return ErrValidation
	}
	if quantity < 1 {
		return ErrBadQuantity
	}
	return s.repo.Upsert(ctx, uuid.NewString(), userID, productID, quantity)
}

// Update sets a line's quantity; a quantity below 1 removes the line.
func (s *CartService) Update(ctx context.Context, userID, lineID string, quantity int) error {
	if quantity < 1 {
		return s.repo.Delete(ctx, userID, lineID)
	}
	return s.repo.UpdateQuantity(ctx, userID, lineID, quantity)
}

// Remove deletes one line.
func (s *CartService) Remove(ctx context.Context, userID, lineID string) error {
	return s.repo.Delete(ctx, userID, lineID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

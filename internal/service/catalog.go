package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/hfdstore/storefront/internal/models"
	"github.com/hfdstore/storefront/internal/repository"
)

// ProductRepository defines the persistence operations required by the
// catalog service.
type ProductRepository interface {
	List(ctx context.Context, f repository.ProductFilter) ([]models.Product, int, error)
	ByID(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Pagination describes a listing page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// CatalogService implements product listing and admin CRUD.
type CatalogService struct {
	repo ProductRepository
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns a filtered catalog page.
func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) ([]models.Product, Pagination, error) {
	products, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, Pagination{}, err
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	pages := (total + limit - 1) / limit
	return products, Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// Get loads one product.
func (s *CatalogService) Get(ctx context.Context, id string) (models.Product, error) {
	return s.repo.ByID(ctx, id)
}

// Create stores a new product, assigning an id when none is given.
func (s *CatalogService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Name == "" || p.Price < 0 {
		return models.Product{}, ErrValidation
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update rewrites an existing product.
func (s *CatalogService) Update(ctx context.Context, id string, p models.Product) (models.Product, error) {
	if p.Name == "" || p.Price < 0 {
		return models.Product{}, ErrValidation
	}
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes a product.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

package service

import (
	"context"

	"github.com/hfdstore/storefront/internal/models"
)

// AnalyticsOrderRepository is the order-side slice of queries the
// dashboard needs.
type AnalyticsOrderRepository interface {
	Revenue(ctx context.Context) (float64, error)
	CountActive(ctx context.Context) (int, error)
	CountByDay(ctx context.Context, days int) (map[string]int, error)
}

// AnalyticsService aggregates the admin dashboard numbers.
type AnalyticsService struct {
	orders   AnalyticsOrderRepository
	products ProductRepository
	users    UserRepository
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(orders AnalyticsOrderRepository, products ProductRepository, users UserRepository) *AnalyticsService {
	return &AnalyticsService{orders: orders, products: products, users: users}
}

// Stats returns the dashboard summary.
func (s *AnalyticsService) Stats(ctx context.Context) (models.Stats, error) {
	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	active, err := s.orders.CountActive(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return models.Stats{
		Revenue:      revenue,
		ActiveOrders: active,
		Products:     productCount,
		ActiveUsers:  userCount,
	}, nil
}

// TimeStats returns per-day order counts for the trailing 30 days.
func (s *AnalyticsService) TimeStats(ctx context.Context) (map[string]int, error) {
	return s.orders.CountByDay(ctx, 30)
}

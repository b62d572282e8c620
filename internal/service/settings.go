package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hfdstore/storefront/internal/models"
	"github.com/hfdstore/storefront/internal/repository"
)

// SettingsRepository defines the persistence operations required by
// the settings service.
type SettingsRepository interface {
	Get(ctx context.Context) (models.Settings, error)
	Set(ctx context.Context, s models.Settings) error
}

// SettingsService serves and edits the store-wide settings, falling
// back to a configured default until the admin writes them.
type SettingsService struct {
	repo            SettingsRepository
	defaultShipping float64
	log             *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo SettingsRepository, defaultShipping float64, log *zap.Logger) *SettingsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SettingsService{repo: repo, defaultShipping: defaultShipping, log: log}
}

// Get returns the current settings, defaulting when never written.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	st, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Settings{ShippingCost: s.defaultShipping}, nil
	}
	return st, err
}

// Set writes the settings. A negative shipping cost is rejected before
// any persistence.
func (s *SettingsService) Set(ctx context.Context, st models.Settings) error {
	if st.ShippingCost < 0 {
		return fmt.Errorf("%w: shipping cost must not be negative", ErrValidation)
	}
	return s.repo.Set(ctx, st)
}

// ShippingCost returns the effective shipping cost, logging and
// defaulting on lookup failure so checkout never blocks on settings.
func (s *SettingsService) ShippingCost(ctx context.Context) float64 {
	st, err := s.Get(ctx)
	if err != nil {
		s.log.Warn("settings lookup failed, using default shipping", zap.Error(err))
		return s.defaultShipping
	}
	return st.ShippingCost
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hfdstore/storefront/internal/models"
)

// SettingsService defines the settings operations required by the
// HTTP handlers.
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Set(ctx context.Context, s models.Settings) error
}

// AnalyticsService defines the dashboard operations required by the
// HTTP handlers.
type AnalyticsService interface {
	Stats(ctx context.Context) (models.Stats, error)
	TimeStats(ctx context.Context) (map[string]int, error)
}

// SettingsHandler handles public settings, admin settings and the
// analytics dashboard.
type SettingsHandler struct {
	Settings  SettingsService
	Analytics AnalyticsService
}

// Get serves GET /api/settings (public, for checkout display).
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// Update serves PUT /api/admin/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Settings.Set(r.Context(), s); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// Stats serves GET /api/analytics/stats.
func (h *SettingsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// TimeStats serves GET /api/analytics/time-stats.
func (h *SettingsHandler) TimeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.TimeStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

// Health serves GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hfdstore/storefront/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the storefront API.
//
// Public endpoints: health, login, register, the catalog read path and
// the public settings. Everything else sits behind bearer-token auth.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs each request
//  3. BearerAuth(secret)                   — protected group only
func NewRouter(
	authHandler *AuthHandler,
	productHandler *ProductHandler,
	cartHandler *CartHandler,
	orderHandler *OrderHandler,
	settingsHandler *SettingsHandler,
	jwtSecret []byte,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/health", Health)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users/login", authHandler.Login)
		r.Post("/users/register", authHandler.Register)
		r.Get("/settings", settingsHandler.Get)
		r.Get("/products", productHandler.List)
		r.Get("/products/{id}", productHandler.Get)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(jwtSecret))

			r.Get("/users/profile", authHandler.Profile)
			r.Put("/users/profile", authHandler.UpdateProfile)

			r.Post("/products", productHandler.Create)
			r.Put("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)

			r.Get("/cart", cartHandler.Get)
			r.Post("/cart", cartHandler.Add)
			r.Put("/cart/{itemId}", cartHandler.Update)
			r.Delete("/cart/{itemId}", cartHandler.Remove)
			r.Delete("/cart", cartHandler.Clear)

			r.Post("/orders", orderHandler.Create)
			r.Get("/orders", orderHandler.List)
			r.Get("/orders/{id}", orderHandler.Get)
			r.Patch("/orders/{id}/status", orderHandler.UpdateStatus)

			r.Get("/admin/settings", settingsHandler.Get)
			r.Put("/admin/settings", settingsHandler.Update)
			r.Post("/admin/inventory/products", productHandler.AdminCreate)
			r.Put("/admin/inventory/products/{id}", productHandler.AdminUpdate)

			r.Get("/analytics/stats", settingsHandler.Stats)
			r.Get("/analytics/time-stats", settingsHandler.TimeStats)
		})
	})

	return r
}

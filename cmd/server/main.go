// Package main initializes and starts the storefront backend server:
// configuration, logging, database, repositories, services, handlers
// and the HTTP listener.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/hfdstore/storefront/internal/config"
	"github.com/hfdstore/storefront/internal/db"
	"github.com/hfdstore/storefront/internal/repository"
	"github.com/hfdstore/storefront/internal/server/handler/http"
	"github.com/hfdstore/storefront/internal/service"
	"github.com/hfdstore/storefront/pkg/rabbitmq"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func main() {
	cfg := config.LoadServer()

	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize PostgreSQL and bootstrap the schema.
	conn, err := db.InitPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("cannot init database", zap.Error(err))
	}

	// Drop cart lines untouched for 30 days.
	db.StartStaleCartCleaner(context.Background(), conn,
		time.Hour,
		30*24*time.Hour,
		logger,
	)

	// Repositories.
	userRepo := repository.NewPostgresUserRepository(conn)
	productRepo := repository.NewPostgresProductRepository(conn)
	cartRepo := repository.NewPostgresCartRepository(conn)
	orderRepo := repository.NewPostgresOrderRepository(conn)
	settingsRepo := repository.NewPostgresSettingsRepository(conn)

	// Optional order-event publishing.
	var events service.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Fatal("cannot init RabbitMQ", zap.Error(err))
		}
		defer mq.Close()
		events = mq
	}

	// Services.
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo)
	settingsService := service.NewSettingsService(settingsRepo, cfg.ShippingCost, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, settingsService, events, logger)
	analyticsService := service.NewAnalyticsService(orderRepo, productRepo, userRepo)

	// Handlers and router.
	router := http.NewRouter(
		&http.AuthHandler{AuthService: authService},
		&http.ProductHandler{Catalog: catalogService},
		&http.CartHandler{Cart: cartService},
		&http.OrderHandler{Orders: orderService},
		&http.SettingsHandler{Settings: settingsService, Analytics: analyticsService},
		[]byte(cfg.JWTSecret),
		logger,
	)

	server := &nethttp.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	logger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

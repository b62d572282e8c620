// Package config provides configuration for the storefront binaries,
// read from environment variables with sensible defaults.
package config

import "github.com/spf13/viper"

// Server holds the backend configuration values.
type Server struct {
	// Addr is the listen address (ip:port).
	Addr string

	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string

	// JWTSecret signs and verifies session tokens.
	JWTSecret string

	// RabbitMQURL enables order-event publishing when non-empty.
	RabbitMQURL string

	// ShippingCost is the default flat shipping rate until the admin
	// overrides it.
	ShippingCost float64
}

// Client holds the CLI client configuration values.
type Client struct {
	// APIURL is the backend base URL.
	APIURL string

	// StateFile is the path of the local JSON state store.
	StateFile string
}

// LoadServer reads the server configuration from the environment.
func LoadServer() *Server {
	v := viper.New()
	v.SetDefault("APP_ADDR", "localhost:8080")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SHIPPING_COST", 99.0)
	v.AutomaticEnv()

	return &Server{
		Addr:         v.GetString("APP_ADDR"),
		DatabaseDSN:  v.GetString("DATABASE_DSN"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		ShippingCost: v.GetFloat64("SHIPPING_COST"),
	}
}

// LoadClient reads the client configuration from the environment.
func LoadClient() *Client {
	v := viper.New()
	v.SetDefault("API_URL", "http://localhost:8080")
	v.SetDefault("STATE_FILE", "storefront.json")
	v.AutomaticEnv()

	return &Client{
		APIURL:    v.GetString("API_URL"),
		StateFile: v.GetString("STATE_FILE"),
	}
}

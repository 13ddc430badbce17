package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the application.
// It is loaded once at startup and passed by reference into the
// services that need it.
type Config struct {
	AppPort     string
	DatabaseDSN string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	RabbitMQURL string
}

// Load reads configuration from environment variables via Viper.
// JWT_SECRET has no default on purpose: signing tokens with a
// well-known fallback secret is a security hole, so a missing secret
// is a startup failure.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=counterapp port=5432 sslmode=disable")
	viper.SetDefault("JWT_ISSUER", "counterapp")
	viper.SetDefault("JWT_AUDIENCE", "counterapp-clients")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	cfg := &Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		JWTIssuer:   viper.GetString("JWT_ISSUER"),
		JWTAudience: viper.GetString("JWT_AUDIENCE"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set; refusing to start without a signing secret")
	}

	return cfg, nil
}

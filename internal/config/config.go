// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"3000" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	StoreDriver   string        `env:"STORE_DRIVER" envDefault:"mongo" validate:"oneof=mongo postgres sqlite"`
	MongoURI      string        `env:"MONGO_URI" validate:"required_if=StoreDriver mongo"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"estate" validate:"required_if=StoreDriver mongo"`
	DatabaseURL   string        `env:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"estate.db"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	RunMigrations bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	JWTSecret string `env:"JWT_SECRET,required" validate:"required,min=16"`

	// RedisAddr empty disables the property cache.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m" validate:"gt=0"`

	MetricsPort        string   `env:"METRICS_PORT" envDefault:"9090"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// AuthRequiredForWrites puts the Bearer token check in front of every mutating route.
	AuthRequiredForWrites bool `env:"AUTH_REQUIRED_FOR_WRITES" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto slog levels.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

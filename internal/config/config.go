// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	ServerAddr  string        `env:"SERVER_ADDR" envDefault:":8080"`
	EventBuffer int           `env:"EVENT_BUFFER" envDefault:"16"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	Database    Database      `envPrefix:"DATABASE_"`
	Redis       Redis         `envPrefix:"REDIS_"`
}

// Database contains datastore connection parameters.
// Driver selects the gorm dialect: "sqlite" (default) or "postgres".
type Database struct {
	Driver        string `env:"DRIVER" envDefault:"sqlite"`
	DSN           string `env:"DSN" envDefault:"records.db"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// Redis contains cache connection parameters.
// An empty Addr disables caching; the service runs fine without Redis.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

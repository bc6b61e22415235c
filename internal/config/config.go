package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Pocketdash"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	DB struct {
		// Driver selects the blob-store backend: "sqlite" (default,
		// file-local) or "postgres".
		Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
		Path     string `envconfig:"DB_PATH" default:"pocketdash.db"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pocketdash"`
	}

	Storage struct {
		Key string `envconfig:"STORAGE_KEY" default:"expense_tracker_data"`
	}
}

// DriverName maps the configured backend to a database/sql driver name.
func (c *Config) DriverName() string {
	if c.DB.Driver == "postgres" {
		return "pgx"
	}

	return "sqlite"
}

func (c *Config) DSN() string {
	if c.DB.Driver == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
	}

	return c.DB.Path
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

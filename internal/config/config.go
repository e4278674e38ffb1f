/*
Package config loads the service settings from the environment.
A .env file in the working directory is read first, so local runs
behave the same as the container.
*/
package config

import (
	"errors"
	"fmt"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
)

// DevSessionSecret is the SESSION_SECRET default. It is refused in
// production.
const DevSessionSecret = "cronapp-dev-secret"

type Config struct {
	Port   int    `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"local"`

	// SessionSecret signs the patient access tokens.
	SessionSecret string `envconfig:"SESSION_SECRET" default:"cronapp-dev-secret"`
	// AuthDisabled runs every request as the demo patient.
	AuthDisabled bool `envconfig:"AUTH_DISABLED" default:"false"`

	Database Database

	// ViewCacheSize bounds the number of patients whose glucose week
	// view is kept in memory.
	ViewCacheSize int `envconfig:"VIEW_CACHE_SIZE" default:"1024"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	// RateLimitMaxClients bounds the number of client IPs tracked by the
	// rate limiter.
	RateLimitMaxClients int `envconfig:"RATE_LIMIT_MAX_CLIENTS" default:"10000"`
}

// Database holds the optional PostgreSQL settings. An empty Host keeps
// the seeded in-memory store.
type Database struct {
	Host     string `envconfig:"DB_HOST"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_DATABASE" default:"cronapp"`
	Username string `envconfig:"DB_USERNAME" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Schema   string `envconfig:"DB_SCHEMA" default:"public"`
}

func (d Database) Enabled() bool {
	return d.Host != ""
}

func (d Database) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		d.Username, d.Password, d.Host, d.Port, d.Name, d.Schema)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.ViewCacheSize <= 0 {
		return Config{}, fmt.Errorf("VIEW_CACHE_SIZE must be positive, got %d", cfg.ViewCacheSize)
	}
	if cfg.RateLimitMaxClients <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_MAX_CLIENTS must be positive, got %d", cfg.RateLimitMaxClients)
	}
	if cfg.IsProduction() && (cfg.SessionSecret == "" || cfg.SessionSecret == DevSessionSecret) {
		return Config{}, errors.New("SESSION_SECRET must be set to a non-default value in production")
	}
	return cfg, nil
}

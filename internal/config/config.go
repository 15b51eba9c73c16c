// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	API       APIConfig
	Collector CollectorConfig
	Store     StoreConfig
	Server    ServerConfig
	Logging   LoggingConfig
	App       AppConfig
}

// APIConfig holds upstream schedule API settings.
type APIConfig struct {
	BaseURL    string        `env:"API_BASE_URL" envDefault:"https://aviation-edge.com"`
	Key        string        `env:"API_KEY"`
	Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	MaxRetries int           `env:"API_MAX_RETRIES" envDefault:"3"`
}

// CollectorConfig holds collection-run settings.
type CollectorConfig struct {
	// Airports is the comma-separated list of IATA codes to collect
	Airports []string `env:"COLLECT_AIRPORTS" envSeparator:","`

	// Direction is departure, arrival, or both
	Direction string `env:"COLLECT_DIRECTION" envDefault:"both"`

	// DaysAhead is the offset of the first target date (upstream minimum: 8)
	DaysAhead int `env:"COLLECT_DAYS_AHEAD" envDefault:"8"`

	// CollectDays is the number of consecutive target dates per run
	CollectDays int `env:"COLLECT_DAYS" envDefault:"1"`

	// RequestDelay is the fixed pause between upstream requests
	RequestDelay time.Duration `env:"COLLECT_REQUEST_DELAY" envDefault:"1s"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Path is the SQLite database file
	Path string `env:"STORE_PATH" envDefault:"flight_schedules.db"`
}

// ServerConfig holds HTTP server settings for the search API.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if cfg.API.MaxRetries < 1 {
		return fmt.Errorf("API_MAX_RETRIES must be at least 1, got %d", cfg.API.MaxRetries)
	}

	validDirections := map[string]bool{"departure": true, "arrival": true, "both": true}
	if !validDirections[cfg.Collector.Direction] {
		return fmt.Errorf("COLLECT_DIRECTION must be one of: departure, arrival, both; got %q", cfg.Collector.Direction)
	}

	// The upstream API only serves schedules at least 8 days out.
	if cfg.Collector.DaysAhead < 8 {
		return fmt.Errorf("COLLECT_DAYS_AHEAD must be at least 8, got %d", cfg.Collector.DaysAhead)
	}
	if cfg.Collector.CollectDays < 1 || cfg.Collector.CollectDays > 31 {
		return fmt.Errorf("COLLECT_DAYS must be between 1 and 31, got %d", cfg.Collector.CollectDays)
	}
	if cfg.Collector.RequestDelay < 0 {
		return fmt.Errorf("COLLECT_REQUEST_DELAY must not be negative")
	}

	if cfg.Store.Path == "" {
		return fmt.Errorf("STORE_PATH must not be empty")
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

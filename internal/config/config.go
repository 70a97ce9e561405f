// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/evcraddock/immo-abidjan/internal/db"
)

// StoreConfig selects the database.
type StoreConfig struct {
	DatabaseURL string // PostgreSQL when set
	Path        string // SQLite file otherwise
}

// RefreshConfig drives the background refresh loop.
type RefreshConfig struct {
	Interval      time.Duration
	InitialDelay  time.Duration
	Backoff       time.Duration
	OnStart       bool
	ScrapeEnabled bool
	ScrapeURLs    []string
}

// FluentConfig enables shipping logs to a fluentd/fluent-bit forwarder.
type FluentConfig struct {
	Enabled bool
	Host    string
	Port    int
}

// LogConfig controls local log output.
type LogConfig struct {
	Format string // text or json
	Level  string
}

// Config holds everything the server needs.
type Config struct {
	AppName       string
	Port          int
	TodayFallback bool
	Store         StoreConfig
	Refresh       RefreshConfig
	Log           LogConfig
	Fluent        FluentConfig
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads an .env file (./.env when no path is given; a missing file
// is fine) and then the environment.
func Load(envPath ...string) (*Config, error) {
	if err := godotenv.Load(envPath...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := &Config{
		AppName:       getEnvAsString("APP_NAME", "immo-abidjan"),
		TodayFallback: getEnvAsBool("TODAY_FALLBACK", true),
		Store: StoreConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Path:        os.Getenv("DB_PATH"),
		},
		Refresh: RefreshConfig{
			OnStart:       getEnvAsBool("REFRESH_ON_START", true),
			ScrapeEnabled: getEnvAsBool("SCRAPE_ENABLED", false),
			ScrapeURLs:    getEnvAsList("SCRAPE_URLS"),
		},
		Log: LogConfig{
			Format: strings.ToLower(getEnvAsString("LOG_FORMAT", "text")),
			Level:  strings.ToLower(getEnvAsString("LOG_LEVEL", "info")),
		},
		Fluent: FluentConfig{
			Enabled: getEnvAsBool("FLUENT_ENABLED", false),
			Host:    getEnvAsString("FLUENT_HOST", "localhost"),
		},
	}

	var err error
	if cfg.Port, err = getEnvAsInt("PORT", 5000); err != nil {
		return nil, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be 1-65535, got %d", cfg.Port)
	}
	if cfg.Fluent.Port, err = getEnvAsInt("FLUENT_PORT", 24224); err != nil {
		return nil, err
	}
	if cfg.Refresh.Interval, err = getEnvAsDuration("REFRESH_INTERVAL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Refresh.InitialDelay, err = getEnvAsDuration("REFRESH_INITIAL_DELAY", 0); err != nil {
		return nil, err
	}
	if cfg.Refresh.Backoff, err = getEnvAsDuration("REFRESH_BACKOFF", time.Hour); err != nil {
		return nil, err
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.Log.Format)
	}

	if cfg.Fluent.Enabled && cfg.Fluent.Host == "" {
		slog.Warn("FLUENT_ENABLED is set without FLUENT_HOST, disabling fluent logging")
		cfg.Fluent.Enabled = false
	}

	if cfg.Store.DatabaseURL == "" && cfg.Store.Path == "" {
		if cfg.Store.Path, err = db.DefaultPath(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnvAsString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return b
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 12h or 30m: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

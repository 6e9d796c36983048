// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"catalogseo/internal/cache"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible shared cache)
	ValkeyEnabled  bool
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// SEO engine
	CacheTiers        cache.Tiers
	GenerationTimeout time.Duration
	FetchTimeout      time.Duration
	LinkSection       string
	MakeSection       string

	// Directory of Markdown template files imported at startup ("" = none).
	TemplateDir string

	// Requests per minute per client IP on the API.
	RateLimitPerMinute int

	// OpenTelemetry tracing. Spans go to OTLP/HTTP when an endpoint is set,
	// to stdout otherwise.
	TracingEnabled   bool
	OTLPEndpoint     string
	TraceSampleRatio float64
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Malformed durations or numbers are
// errors, as is the default database password in production.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "catalogseo"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "catalogseo"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		LinkSection: envOrDefault("SEO_LINK_SECTION", "pieces"),
		MakeSection: envOrDefault("SEO_MAKE_SECTION", "constructeurs"),
		TemplateDir: os.Getenv("SEO_TEMPLATE_DIR"),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.ValkeyEnabled, err = envBool("VALKEY_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.CacheTiers.Short, err = envDuration("SEO_TTL_SHORT", cache.DefaultShortTTL); err != nil {
		return nil, err
	}
	if cfg.CacheTiers.Medium, err = envDuration("SEO_TTL_MEDIUM", cache.DefaultMediumTTL); err != nil {
		return nil, err
	}
	if cfg.CacheTiers.Long, err = envDuration("SEO_TTL_LONG", cache.DefaultLongTTL); err != nil {
		return nil, err
	}
	if err := cfg.CacheTiers.Validate(); err != nil {
		return nil, err
	}
	if cfg.GenerationTimeout, err = envDuration("SEO_GENERATION_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = envDuration("SEO_FETCH_TIMEOUT", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = envInt("RATE_LIMIT_PER_MINUTE", 600); err != nil {
		return nil, err
	}

	if cfg.TracingEnabled, err = envBool("OTEL_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.TraceSampleRatio, err = envRatio("OTEL_SAMPLER_RATIO", 0.1); err != nil {
		return nil, err
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDuration parses a positive time.ParseDuration value such as "45m".
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

// envInt parses a positive integer.
func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// envRatio parses a float in [0, 1].
func envRatio(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("%s must be between 0 and 1, got %g", key, f)
	}
	return f, nil
}

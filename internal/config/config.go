// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

// Package config loads and validates Folio configuration.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file, then environment variables. ENV > file > defaults.
package config

import (
	"time"
)

// Config is the root configuration for the Folio service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production". Production enforces
	// stricter validation (JWT secret length, explicit CORS origins).
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	// Driver selects the GORM driver: sqlite or postgres.
	Driver string `koanf:"driver"`

	// DSN is the driver-specific data source name. For sqlite this is a
	// file path ("folio.db") or ":memory:".
	DSN string `koanf:"dsn"`

	// AutoMigrate runs schema migration on startup when true.
	AutoMigrate bool `koanf:"auto_migrate"`

	// LogQueries enables GORM query logging at debug level.
	LogQueries bool `koanf:"log_queries"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs bearer tokens. Minimum 32 characters in production.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`

	CORSOrigins []string `koanf:"cors_origins"`

	// Standard API rate limit tier.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// Strict tier for /auth endpoints (brute force prevention).
	AuthRateLimitRequests int           `koanf:"auth_rate_limit_requests"`
	AuthRateLimitWindow   time.Duration `koanf:"auth_rate_limit_window"`

	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// Per-account login lockout.
	LoginMaxFailures int           `koanf:"login_max_failures"`
	LoginLockout     time.Duration `koanf:"login_lockout"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// FeedPageSize is the fixed page size of the social feed.
	FeedPageSize int `koanf:"feed_page_size"`

	// AvatarDir is where uploaded profile avatars are stored.
	AvatarDir string `koanf:"avatar_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8484,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Driver:      "sqlite",
			DSN:         "folio.db",
			AutoMigrate: true,
			LogQueries:  false,
		},
		Security: SecurityConfig{
			JWTSecret:             "",
			TokenTTL:              24 * time.Hour,
			BcryptCost:            12,
			CORSOrigins:           []string{},
			RateLimitRequests:     100,
			RateLimitWindow:       time.Minute,
			AuthRateLimitRequests: 10,
			AuthRateLimitWindow:   time.Minute,
			RateLimitDisabled:     false,
			LoginMaxFailures:      5,
			LoginLockout:          5 * time.Minute,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			FeedPageSize:    10,
			AvatarDir:       "data/avatars",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

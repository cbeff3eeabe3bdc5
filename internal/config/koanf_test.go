// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package config

import (
	"testing"
)

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{name: "server section", env: "SERVER_PORT", want: "server.port"},
		{name: "nested key", env: "DATABASE_AUTO_MIGRATE", want: "database.auto_migrate"},
		{name: "security section", env: "SECURITY_JWT_SECRET", want: "security.jwt_secret"},
		{name: "jwt alias", env: "JWT_SECRET", want: "security.jwt_secret"},
		{name: "port alias", env: "PORT", want: "server.port"},
		{name: "database url alias", env: "DATABASE_URL", want: "database.dsn"},
		{name: "log level alias", env: "LOG_LEVEL", want: "logging.level"},
		{name: "unrelated variable ignored", env: "HOME", want: ""},
		{name: "path ignored", env: "PATH", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8484 {
		t.Errorf("Server.Port = %d, want 8484", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.API.DefaultPageSize != 20 {
		t.Errorf("API.DefaultPageSize = %d, want 20", cfg.API.DefaultPageSize)
	}
	if cfg.API.FeedPageSize != 10 {
		t.Errorf("API.FeedPageSize = %d, want 10", cfg.API.FeedPageSize)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SECURITY_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.DSN != "custom.db" {
		t.Errorf("Database.DSN = %q, want custom.db", cfg.Database.DSN)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("Security.CORSOrigins = %v, want two origins", cfg.Security.CORSOrigins)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }},
		{name: "zero token ttl", mutate: func(c *Config) { c.Security.TokenTTL = 0 }},
		{name: "page size inversion", mutate: func(c *Config) {
			c.API.DefaultPageSize = 500
			c.API.MaxPageSize = 100
		}},
		{name: "production short jwt secret", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.Security.JWTSecret = "short"
		}},
		{name: "production wildcard cors", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.Security.JWTSecret = "this_is_a_long_enough_production_secret_1234"
			c.Security.CORSOrigins = []string{"*"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

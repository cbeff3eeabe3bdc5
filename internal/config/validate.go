// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// minJWTSecretLen is the minimum JWT secret length accepted in production.
const minJWTSecretLen = 32

// Validate checks the configuration for consistency. Production mode adds
// hard requirements that development mode only warns about elsewhere.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("security.bcrypt_cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.Security.BcryptCost)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive")
	}

	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size must be between 1 and api.max_page_size")
	}
	if c.API.FeedPageSize < 1 {
		return fmt.Errorf("api.feed_page_size must be positive")
	}

	if c.IsProduction() {
		if len(c.Security.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("security.jwt_secret must be at least %d characters in production", minJWTSecretLen)
		}
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("security.cors_origins must not contain a wildcard in production")
			}
		}
	}

	return nil
}

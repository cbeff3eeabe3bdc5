// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

// Package api provides the HTTP surface of Folio: routing, middleware
// wiring, and the request handlers for every domain.
package api

import (
	"gorm.io/gorm"

	"github.com/folio-labs/folio/internal/auth"
	"github.com/folio-labs/folio/internal/authz"
	"github.com/folio-labs/folio/internal/config"
	"github.com/folio-labs/folio/internal/store"
)

// Handlers carries the dependencies shared by all request handlers.
type Handlers struct {
	cfg *config.Config

	users   *store.UserStore
	catalog *store.CatalogStore
	library *store.LibraryStore
	blog    *store.BlogStore
	social  *store.SocialStore

	hasher  *auth.Hasher
	jwt     *auth.JWTManager
	lockout *auth.Lockout
}

// NewHandlers wires the handler set against a database connection.
func NewHandlers(cfg *config.Config, db *gorm.DB, jwt *auth.JWTManager) *Handlers {
	return &Handlers{
		cfg:     cfg,
		users:   store.NewUserStore(db),
		catalog: store.NewCatalogStore(db),
		library: store.NewLibraryStore(db),
		blog:    store.NewBlogStore(db),
		social:  store.NewSocialStore(db),
		hasher:  auth.NewHasher(cfg.Security.BcryptCost),
		jwt:     jwt,
		lockout: auth.NewLockout(cfg.Security.LoginMaxFailures, cfg.Security.LoginLockout),
	}
}

// Router bundles the handler set with the middleware it is served behind.
type Router struct {
	handlers *Handlers
	authmw   *auth.Middleware
	authzmw  *authz.Middleware
	chimw    *ChiMiddleware
}

// NewRouter creates the router wiring for the API.
func NewRouter(handlers *Handlers, jwt *auth.JWTManager, enforcer *authz.Enforcer) *Router {
	cfg := handlers.cfg
	return &Router{
		handlers: handlers,
		authmw:   auth.NewMiddleware(jwt),
		authzmw:  authz.NewMiddleware(enforcer),
		chimw:    NewChiMiddleware(&cfg.Security),
	}
}

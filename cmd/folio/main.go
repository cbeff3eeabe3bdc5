// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

// Package main is the entry point for the Folio server.
//
// Folio is a reading community platform exposing a book catalog, a
// library management API, a blog, and a social surface behind one JSON
// API. The server initializes in order:
//
//  1. Configuration: koanf v2 layers (defaults, config.yaml, environment)
//  2. Logging: zerolog global logger from the logging config
//  3. Database: GORM over sqlite or postgres, with optional auto-migration
//  4. Auth: JWT manager, casbin RBAC enforcer
//  5. HTTP server: chi router under a suture supervision tree
//
// Graceful shutdown on SIGINT/SIGTERM waits for in-flight requests up to
// the configured shutdown timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/folio-labs/folio/internal/api"
	"github.com/folio-labs/folio/internal/auth"
	"github.com/folio-labs/folio/internal/authz"
	"github.com/folio-labs/folio/internal/config"
	"github.com/folio-labs/folio/internal/database"
	"github.com/folio-labs/folio/internal/logging"
	"github.com/folio-labs/folio/internal/supervisor"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "folio",
		Short:   "Folio book catalog and reading community server",
		Version: version,
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads .env (development convenience, missing file is fine)
// and the layered configuration, then configures the global logger.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Folio HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(&cfg.Database)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrating schema: %w", err)
			}

			logging.Info().Str("driver", cfg.Database.Driver).Msg("migration complete")
			return nil
		},
	}
}

func runServer(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("starting folio")

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}

	jwtManager, err := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		return fmt.Errorf("initializing token manager: %w", err)
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return fmt.Errorf("initializing authorization: %w", err)
	}

	handlers := api.NewHandlers(cfg, db, jwtManager)
	router := api.NewRouter(handlers, jwtManager, enforcer)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("building supervision tree: %w", err)
	}
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("http server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logging.Info().Msg("shutdown complete")
	return nil
}

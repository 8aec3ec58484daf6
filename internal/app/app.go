// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the application from its configuration: database,
// repositories, services, page renderer, HTTP handler and server. Nothing is
// kept in package level state; an App is built by NewApp and released by
// Close.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/handler"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/server"
	"github.com/MKhiriev/capability-assessment/internal/service"
	"github.com/MKhiriev/capability-assessment/internal/store"
	"github.com/MKhiriev/capability-assessment/internal/view"
	"github.com/MKhiriev/capability-assessment/models"
)

var ErrNilConfig = errors.New("configuration is required")

type App struct {
	storages *store.Storages
	services *service.Services
	handlers *handler.Handlers
	server   server.Server

	logger *logger.Logger
}

// NewApp connects to the database, applies migrations, bootstraps the
// configured administrator and wires every layer. The caller must Close
// the returned App.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.UsesDevSessionKey() {
		log.Warn().Msg("using the development session key; set APP_SESSION_SIGN_KEY in production")
	}

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	app, err := wire(ctx, storages, cfg, buildInfo, log)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}

	return app, nil
}

func wire(ctx context.Context, storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	services, err := service.NewServices(storages, *cfg, buildInfo, log)
	if err != nil {
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	if err = bootstrapAdmin(ctx, services.AuthService, cfg.App, log); err != nil {
		return nil, err
	}

	renderer, err := view.NewRenderer(buildInfo)
	if err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}

	handlers, err := handler.NewHandlers(services, renderer, storages, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return &App{
		storages: storages,
		services: services,
		handlers: handlers,
		server:   srv,
		logger:   log,
	}, nil
}

// bootstrapAdmin creates the administrator named in the configuration when
// the account does not exist yet.
func bootstrapAdmin(ctx context.Context, auth service.AuthService, cfg config.App, log *logger.Logger) error {
	if cfg.AdminUsername == "" {
		return nil
	}

	created, err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("error bootstrapping admin %q: %w", cfg.AdminUsername, err)
	}
	if created {
		log.Info().Str("username", cfg.AdminUsername).Msg("administrator account created")
	}
	return nil
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (a *App) Run(ctx context.Context) error {
	return a.server.RunServer(ctx)
}

// Router returns the fully wired HTTP handler, for embedding the
// application in another server.
func (a *App) Router() http.Handler {
	return a.handlers.HTTP.Init()
}

// SetAdmin grants or revokes administrator rights.
func (a *App) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	return a.services.AuthService.SetAdmin(ctx, username, isAdmin)
}

func (a *App) Close() error {
	a.logger.Info().Msg("closing application")
	if err := a.storages.Close(); err != nil {
		return fmt.Errorf("error closing storages: %w", err)
	}
	return nil
}

// Migrate opens the configured database, applies pending migrations and
// returns the resulting schema version.
func Migrate(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (int64, error) {
	if cfg == nil {
		return 0, ErrNilConfig
	}

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return 0, fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	return db.Migrate(ctx)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/service"
	"github.com/MKhiriev/capability-assessment/internal/view"
)

// maxFormBytes limits POST bodies.
const maxFormBytes = 64 << 10

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	renderer *view.Renderer
	pinger   Pinger

	secureCookies bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, renderer *view.Renderer, pinger Pinger, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		renderer:      renderer,
		pinger:        pinger,
		secureCookies: cfg.SecureCookies,
		logger:        logger,
	}
}

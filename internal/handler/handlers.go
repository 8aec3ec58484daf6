// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/handler/http"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/service"
	"github.com/MKhiriev/capability-assessment/internal/view"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, renderer *view.Renderer, pinger http.Pinger, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if renderer == nil {
		return nil, errNoRenderer
	}

	return &Handlers{
		HTTP: http.NewHandler(services, renderer, pinger, cfg, logger),
	}, nil
}

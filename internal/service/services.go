// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic between the HTTP handlers and
// the repositories: accounts and sessions, assessment submission with
// validation, and the admin report.
package service

import (
	"fmt"

	"github.com/MKhiriev/capability-assessment/internal/chart"
	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/store"
	"github.com/MKhiriev/capability-assessment/models"
)

type Services struct {
	AuthService       AuthService
	SessionService    SessionService
	AssessmentService AssessmentService
	ReportService     ReportService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	assessmentService := NewAssessmentService(storages.AssessmentRepository, logger)

	return &Services{
		AuthService:       authService,
		SessionService:    NewSessionService(cfg.App, logger),
		AssessmentService: assessmentService,
		ReportService: NewReportService(
			assessmentService,
			storages.AssessmentRepository,
			chart.NewRadarRenderer(chart.Options{}),
			logger,
		),
		AppInfoService: NewAppInfoService(buildInfo),
	}, nil
}

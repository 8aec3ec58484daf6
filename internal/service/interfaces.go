// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/capability-assessment/models"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	UserByID(ctx context.Context, userID int64) (models.User, error)

	// EnsureAdmin creates the administrator account when it does not exist
	// yet and reports whether it did.
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
	SetAdmin(ctx context.Context, username string, isAdmin bool) error
}

type SessionService interface {
	Issue(ctx context.Context, user models.User) (models.Session, error)
	Parse(ctx context.Context, token string) (int64, error)
}

type AssessmentService interface {
	Submit(ctx context.Context, submission models.AssessmentSubmission) (models.Assessment, error)

	// RecentForUser and RecentAll treat a non-positive limit as the default
	// and cap larger values at it.
	RecentForUser(ctx context.Context, userID int64, limit int) ([]models.Assessment, error)
	RecentAll(ctx context.Context, limit int) ([]models.AssessmentWithUser, error)
}

// AssessmentServiceWrapper defines middleware composition for
// AssessmentService. Implementations wrap an existing AssessmentService to
// add behavior such as validation.
type AssessmentServiceWrapper interface {
	Wrap(AssessmentService) AssessmentService
}

type ReportService interface {
	GlobalAverages(ctx context.Context) (models.Averages, error)
	RadarChart(ctx context.Context) ([]byte, error)
	AdminReport(ctx context.Context) (models.AdminReport, error)
}

// ChartRenderer turns averages into an image.
type ChartRenderer interface {
	RenderRadar(averages models.Averages) ([]byte, error)
}

type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}

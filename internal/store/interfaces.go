// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/capability-assessment/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID filled in.
	// Returns ErrLoginAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns ErrNoUserWasFound when nothing matches.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID returns ErrNoUserWasFound when nothing matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// SetAdmin updates the admin flag of the named user.
	// Returns ErrNoUserWasFound when nothing matches.
	SetAdmin(ctx context.Context, username string, isAdmin bool) error
}

// AssessmentRepository persists assessments and answers the read patterns
// of the history and admin pages.
type AssessmentRepository interface {
	// SaveAssessment inserts a validated assessment and returns it with ID
	// filled in.
	SaveAssessment(ctx context.Context, assessment models.Assessment) (models.Assessment, error)

	// RecentForUser returns at most limit assessments of one user, newest
	// first.
	RecentForUser(ctx context.Context, userID int64, limit uint64) ([]models.Assessment, error)

	// RecentAll returns at most limit assessments of every user joined with
	// the owner's username, newest first.
	RecentAll(ctx context.Context, limit uint64) ([]models.AssessmentWithUser, error)

	// GlobalAverages returns the mean score per capability over every
	// stored assessment; all means are 0 when there are none.
	GlobalAverages(ctx context.Context) (models.Averages, error)
}

// ErrorClassificator maps a driver error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

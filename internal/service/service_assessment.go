// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/store"
	"github.com/MKhiriev/capability-assessment/models"
)

type assessmentService struct {
	assessmentRepository store.AssessmentRepository

	now func() time.Time

	logger *logger.Logger
}

// NewAssessmentService returns the assessment service wrapped with input
// validation.
func NewAssessmentService(assessmentRepository store.AssessmentRepository, logger *logger.Logger) AssessmentService {
	return NewAssessmentValidationService().Wrap(newAssessmentService(assessmentRepository, logger))
}

func newAssessmentService(assessmentRepository store.AssessmentRepository, logger *logger.Logger) *assessmentService {
	return &assessmentService{
		assessmentRepository: assessmentRepository,
		now:                  time.Now,
		logger:               logger,
	}
}

// Submit stores an already validated submission. Only the known
// capabilities are copied; notes are trimmed.
func (a *assessmentService) Submit(ctx context.Context, submission models.AssessmentSubmission) (models.Assessment, error) {
	scores := make(models.Scores, len(models.Capabilities))
	for _, c := range models.Capabilities {
		scores[c.Key] = submission.Scores[c.Key]
	}

	saved, err := a.assessmentRepository.SaveAssessment(ctx, models.Assessment{
		UserID:    submission.UserID,
		Scores:    scores,
		Notes:     strings.TrimSpace(submission.Notes),
		CreatedAt: a.now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", submission.UserID).Msg("saving assessment failed")
		return models.Assessment{}, fmt.Errorf("saving assessment failed: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", saved.UserID).Int64("assessment_id", saved.ID).Msg("assessment submitted")
	return saved, nil
}

func (a *assessmentService) RecentForUser(ctx context.Context, userID int64, limit int) ([]models.Assessment, error) {
	assessments, err := a.assessmentRepository.RecentForUser(ctx, userID, capLimit(limit, models.UserHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("loading user history failed: %w", err)
	}
	return assessments, nil
}

func (a *assessmentService) RecentAll(ctx context.Context, limit int) ([]models.AssessmentWithUser, error) {
	assessments, err := a.assessmentRepository.RecentAll(ctx, capLimit(limit, models.AdminListingLimit))
	if err != nil {
		return nil, fmt.Errorf("loading assessments failed: %w", err)
	}
	return assessments, nil
}

// capLimit returns ceiling for non-positive or oversized limits.
func capLimit(limit, ceiling int) uint64 {
	if limit <= 0 || limit > ceiling {
		return uint64(ceiling)
	}
	return uint64(limit)
}

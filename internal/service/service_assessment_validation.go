// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/capability-assessment/internal/validators"
	"github.com/MKhiriev/capability-assessment/models"
)

// AssessmentValidationService rejects invalid submissions before they reach
// the wrapped service. Reads pass through unchanged.
type AssessmentValidationService struct {
	inner     AssessmentService
	validator validators.Validator
}

func NewAssessmentValidationService() AssessmentServiceWrapper {
	return &AssessmentValidationService{
		validator: validators.NewAssessmentValidator(),
	}
}

func (v *AssessmentValidationService) Submit(ctx context.Context, submission models.AssessmentSubmission) (models.Assessment, error) {
	if err := v.validator.Validate(ctx, submission); err != nil {
		return models.Assessment{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.Submit(ctx, submission)
}

func (v *AssessmentValidationService) RecentForUser(ctx context.Context, userID int64, limit int) ([]models.Assessment, error) {
	if err := v.validator.Validate(ctx, models.AssessmentSubmission{UserID: userID}, validators.FieldUserID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.RecentForUser(ctx, userID, limit)
}

func (v *AssessmentValidationService) RecentAll(ctx context.Context, limit int) ([]models.AssessmentWithUser, error) {
	return v.inner.RecentAll(ctx, limit)
}

func (v *AssessmentValidationService) Wrap(wrapped AssessmentService) AssessmentService {
	v.inner = wrapped
	return v
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/capability-assessment/models"
)

// Field name constants accepted by [AssessmentValidator.Validate].
const (
	FieldUserID = "user_id"
	FieldScores = "scores"
	FieldNotes  = "notes"
)

// MaxNotesLength bounds the free-text notes, in characters.
const MaxNotesLength = 2000

// AssessmentValidator checks assessment submissions: every capability must
// be scored and every score must be within [models.MinScore, models.MaxScore].
type AssessmentValidator struct{}

func NewAssessmentValidator() Validator {
	return &AssessmentValidator{}
}

func (v *AssessmentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AssessmentSubmission:
		return v.validateSubmission(ctx, value, fields...)
	case *models.AssessmentSubmission:
		return v.validateSubmission(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *AssessmentValidator) validateSubmission(_ context.Context, s models.AssessmentSubmission, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldScores, FieldNotes}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldUserID:
			if s.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldScores:
			for _, c := range models.Capabilities {
				score, ok := s.Scores[c.Key]
				switch {
				case !ok:
					verr.Add(c.Key, c.Label+" is required")
				case score < models.MinScore || score > models.MaxScore:
					verr.Add(c.Key, fmt.Sprintf("%s must be between %d and %d", c.Label, models.MinScore, models.MaxScore))
				}
			}
		case FieldNotes:
			if utf8.RuneCountInString(s.Notes) > MaxNotesLength {
				verr.Add(FieldNotes, fmt.Sprintf("Notes must be at most %d characters", MaxNotesLength))
			}
		default:
			return ErrUnknownField
		}
	}

	return verr.orNil()
}

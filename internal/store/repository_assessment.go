// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/models"
)

// assessmentRepository is the SQL-backed implementation of
// [AssessmentRepository] over the "assessments" table.
type assessmentRepository struct {
	*DB
	logger *logger.Logger
}

// NewAssessmentRepository constructs an [AssessmentRepository] backed by
// the provided database connection and logger.
func NewAssessmentRepository(db *DB, logger *logger.Logger) AssessmentRepository {
	logger.Debug().Msg("creating assessment repository")
	return &assessmentRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveAssessment inserts one assessment and returns it with the generated
// ID. Scores must already be validated; the CHECK constraints reject
// anything outside [1,10] with [ErrAssessmentNotSaved].
func (r *assessmentRepository) SaveAssessment(ctx context.Context, assessment models.Assessment) (models.Assessment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAssessmentQuery(r.builder, assessment)
	if err != nil {
		log.Err(err).Str("func", "*assessmentRepository.SaveAssessment").Msg("failed to build query")
		return models.Assessment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(&assessment.ID); err != nil {
		log.Err(err).
			Str("func", "*assessmentRepository.SaveAssessment").
			Int64("user_id", assessment.UserID).
			Msg("failed to insert assessment")

		switch r.classify(err) {
		case ForeignKeyViolation:
			return models.Assessment{}, ErrNoUserWasFound
		case CheckViolation:
			return models.Assessment{}, fmt.Errorf("%w: %w", ErrAssessmentNotSaved, err)
		default:
			return models.Assessment{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return assessment, nil
}

// RecentForUser returns up to limit assessments of userID ordered by
// created_at and then id, newest first. Returns an empty slice when the user
// has none.
func (r *assessmentRepository) RecentForUser(ctx context.Context, userID int64, limit uint64) ([]models.Assessment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecentForUserQuery(r.builder, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*assessmentRepository.RecentForUser").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*assessmentRepository.RecentForUser").
			Int64("user_id", userID).
			Msg("failed to execute query for getting user assessments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Assessment, 0, limit)
	for rows.Next() {
		a, scanErr := scanAssessment(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*assessmentRepository.RecentForUser").
				Int64("user_id", userID).
				Msg("failed to scan assessment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*assessmentRepository.RecentForUser").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// RecentAll returns up to limit assessments of all users joined with the
// owner's username, newest first.
func (r *assessmentRepository) RecentAll(ctx context.Context, limit uint64) ([]models.AssessmentWithUser, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecentAllQuery(r.builder, limit)
	if err != nil {
		log.Err(err).Str("func", "*assessmentRepository.RecentAll").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*assessmentRepository.RecentAll").Msg("failed to execute query for getting all assessments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.AssessmentWithUser, 0, limit)
	for rows.Next() {
		var username string
		a, scanErr := scanAssessment(rows, &username)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*assessmentRepository.RecentAll").Msg("failed to scan assessment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, models.AssessmentWithUser{Assessment: a, Username: username})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*assessmentRepository.RecentAll").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// GlobalAverages computes the per-capability mean over all assessments in
// a single aggregate query. Means are 0 when the table is empty.
func (r *assessmentRepository) GlobalAverages(ctx context.Context) (models.Averages, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectGlobalAveragesQuery(r.builder)
	if err != nil {
		log.Err(err).Str("func", "*assessmentRepository.GlobalAverages").Msg("failed to build query")
		return models.Averages{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	means := make([]float64, len(models.Capabilities))
	dest := make([]any, 0, len(means)+1)
	dest = append(dest, &count)
	for i := range means {
		dest = append(dest, &means[i])
	}

	if err = r.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		log.Err(err).Str("func", "*assessmentRepository.GlobalAverages").Msg("failed to compute averages")
		return models.Averages{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	averages := models.Averages{
		Values: make(map[string]float64, len(models.Capabilities)),
		Count:  count,
	}
	for i, c := range models.Capabilities {
		averages.Values[c.Key] = means[i]
	}

	return averages, nil
}

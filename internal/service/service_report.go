// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/store"
	"github.com/MKhiriev/capability-assessment/models"
)

// reportService assembles the admin dashboard: the newest assessments of
// every user, the global averages and their radar chart.
type reportService struct {
	assessments       AssessmentService
	assessmentStorage store.AssessmentRepository
	chart             ChartRenderer

	logger *logger.Logger
}

func NewReportService(assessments AssessmentService, assessmentStorage store.AssessmentRepository, chart ChartRenderer, logger *logger.Logger) ReportService {
	return &reportService{
		assessments:       assessments,
		assessmentStorage: assessmentStorage,
		chart:             chart,
		logger:            logger,
	}
}

func (r *reportService) GlobalAverages(ctx context.Context) (models.Averages, error) {
	averages, err := r.assessmentStorage.GlobalAverages(ctx)
	if err != nil {
		return models.Averages{}, fmt.Errorf("computing averages failed: %w", err)
	}
	return averages, nil
}

func (r *reportService) RadarChart(ctx context.Context) ([]byte, error) {
	averages, err := r.GlobalAverages(ctx)
	if err != nil {
		return nil, err
	}
	return r.render(ctx, averages)
}

func (r *reportService) AdminReport(ctx context.Context) (models.AdminReport, error) {
	recent, err := r.assessments.RecentAll(ctx, models.AdminListingLimit)
	if err != nil {
		return models.AdminReport{}, err
	}

	averages, err := r.GlobalAverages(ctx)
	if err != nil {
		return models.AdminReport{}, err
	}

	png, err := r.render(ctx, averages)
	if err != nil {
		return models.AdminReport{}, err
	}

	return models.AdminReport{Recent: recent, Averages: averages, RadarPNG: png}, nil
}

func (r *reportService) render(ctx context.Context, averages models.Averages) ([]byte, error) {
	png, err := r.chart.RenderRadar(averages)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("count", averages.Count).Msg("rendering radar chart failed")
		return nil, fmt.Errorf("rendering radar chart failed: %w", err)
	}
	return png, nil
}

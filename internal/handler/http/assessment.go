// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/utils"
	"github.com/MKhiriev/capability-assessment/internal/view"
	"github.com/MKhiriev/capability-assessment/models"
)

func (h *Handler) assessForm(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	history, err := h.services.AssessmentService.RecentForUser(r.Context(), user.UserID, models.UserHistoryLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, view.PageAssess, "Assessment", view.NewAssessData(history))
}

func (h *Handler) submitAssessment(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ctx := r.Context()
	log := logger.FromRequest(r)
	user, _ := utils.GetUserFromContext(ctx)

	submission := models.AssessmentSubmission{
		UserID: user.UserID,
		Scores: scoresFromForm(r),
		Notes:  strings.TrimSpace(r.PostFormValue("notes")),
	}

	assessment, err := h.services.AssessmentService.Submit(ctx, submission)
	if err != nil {
		if statusFromError(err) != http.StatusUnprocessableEntity {
			h.serverError(w, r, err)
			return
		}

		history, histErr := h.services.AssessmentService.RecentForUser(ctx, user.UserID, models.UserHistoryLimit)
		if histErr != nil {
			h.serverError(w, r, histErr)
			return
		}

		data := view.NewAssessData(history)
		data.Values = submission.Scores
		data.Notes = submission.Notes
		data.Errors = fieldErrors(err)
		h.render(w, r, http.StatusUnprocessableEntity, view.PageAssess, "Assessment", data)
		return
	}

	log.Info().Int64("assessment_id", assessment.ID).Msg("assessment submitted")
	h.addFlash(w, r, view.FlashSuccess, MsgAssessmentSaved)
	redirect(w, r, "/assess")
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	history, err := h.services.AssessmentService.RecentForUser(r.Context(), user.UserID, models.UserHistoryLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, view.PageHistory, "History", view.HistoryData{History: history})
}

// scoresFromForm reads one field per capability. Empty fields are left out
// so they are reported as missing; anything that is not an integer becomes
// 0 and fails the range check.
func scoresFromForm(r *http.Request) models.Scores {
	scores := make(models.Scores, len(models.Capabilities))
	for _, c := range models.Capabilities {
		raw := strings.TrimSpace(r.PostFormValue(c.Key))
		if raw == "" {
			continue
		}
		score, err := strconv.Atoi(raw)
		if err != nil {
			score = 0
		}
		scores[c.Key] = score
	}
	return scores
}

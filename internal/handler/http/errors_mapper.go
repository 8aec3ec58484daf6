// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/capability-assessment/internal/service"
	"github.com/MKhiriev/capability-assessment/internal/store"
	"github.com/MKhiriev/capability-assessment/internal/validators"
)

// errorStatuses is checked in order and the first sentinel found in the
// error chain decides the status, so an error wrapping two sentinels maps
// the same way every time.
var errorStatuses = []struct {
	target error
	status int
}{
	{validators.ErrInvalidUserID, http.StatusBadRequest},
	{validators.ErrInvalidInput, http.StatusUnprocessableEntity},

	{service.ErrValidation, http.StatusUnprocessableEntity},
	{service.ErrDuplicateUsername, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrSessionInvalid, http.StatusUnauthorized},
	{service.ErrUserNotFound, http.StatusNotFound},

	{store.ErrLoginAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrAssessmentNotSaved, http.StatusUnprocessableEntity},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

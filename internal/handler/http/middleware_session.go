// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/service"
	"github.com/MKhiriev/capability-assessment/internal/utils"
)

// withSession resolves the session cookie into a user stored in the request
// context. Requests without a valid session continue anonymously; a stale
// or forged cookie is cleared.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, err := h.services.SessionService.Parse(ctx, cookie.Value)
		if err != nil {
			log.Debug().Err(err).Msg("session cookie rejected")
			h.clearCookie(w, sessionCookieName)
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.services.AuthService.UserByID(ctx, userID)
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn().Int64("user_id", userID).Msg("session refers to a missing user")
			h.clearCookie(w, sessionCookieName)
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", user.UserID)
		})
		ctx = l.WithContext(utils.WithUser(ctx, user))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth redirects anonymous visitors to the login page.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserFromContext(r.Context()); !ok {
			redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin lets administrators through. Anonymous visitors are sent to
// the login page, other users get 403.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			redirect(w, r, "/login")
			return
		}
		if !user.IsAdmin {
			logger.FromRequest(r).Warn().
				Int64("user_id", user.UserID).
				Str("uri", r.RequestURI).
				Msg("non-admin user denied")
			h.renderError(w, r, http.StatusForbidden, MsgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withBodyLimit caps request bodies at maxFormBytes.
func (h *Handler) withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// parseForm parses a POST form and renders the matching error page when the
// body is malformed or too large. It reports whether the handler may go on.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	err := r.ParseForm()
	if err == nil {
		return true
	}

	logger.FromRequest(r).Debug().Err(err).Msg("parsing form failed")

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.renderError(w, r, http.StatusRequestEntityTooLarge, MsgRequestTooLarge)
		return false
	}
	h.renderError(w, r, http.StatusBadRequest, MsgBadRequest)
	return false
}

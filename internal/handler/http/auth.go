// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/utils"
	"github.com/MKhiriev/capability-assessment/internal/validators"
	"github.com/MKhiriev/capability-assessment/internal/view"
)

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserFromContext(r.Context()); ok {
		redirect(w, r, "/assess")
		return
	}
	redirect(w, r, "/login")
}

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageRegister, "Register", view.FormData{})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ctx := r.Context()
	log := logger.FromRequest(r)

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.services.AuthService.Register(ctx, username, password)
	if err != nil {
		form := view.FormData{Username: username}
		status := statusFromError(err)
		switch status {
		case http.StatusUnprocessableEntity:
			form.Errors = fieldErrors(err)
		case http.StatusConflict:
			form.Errors = map[string]string{validators.FieldUsername: MsgUsernameTaken}
		default:
			h.serverError(w, r, err)
			return
		}
		h.render(w, r, status, view.PageRegister, "Register", form)
		return
	}

	log.Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("user registered")
	h.addFlash(w, r, view.FlashSuccess, MsgAccountCreated)
	redirect(w, r, "/login")
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserFromContext(r.Context()); ok {
		redirect(w, r, "/assess")
		return
	}
	h.render(w, r, http.StatusOK, view.PageLogin, "Log in", view.FormData{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ctx := r.Context()
	log := logger.FromRequest(r)

	username := strings.TrimSpace(r.PostFormValue("username"))

	user, err := h.services.AuthService.Authenticate(ctx, username, r.PostFormValue("password"))
	if err != nil {
		status := statusFromError(err)
		if status != http.StatusUnauthorized {
			h.serverError(w, r, err)
			return
		}
		h.render(w, r, status, view.PageLogin, "Log in", view.FormData{Username: username, FormError: MsgInvalidLogin})
		return
	}

	session, err := h.services.SessionService.Issue(ctx, user)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	h.setSessionCookie(w, session)
	h.addFlash(w, r, view.FlashSuccess, fmt.Sprintf(MsgWelcome, user.Username))
	redirect(w, r, "/assess")
}

// logoutForm keeps the session: only the POST form in the layout logs out,
// so a cross-site link or image cannot end it.
func (h *Handler) logoutForm(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user logged out")
	}

	h.clearCookie(w, sessionCookieName)
	h.addFlash(w, r, view.FlashInfo, MsgLoggedOut)
	redirect(w, r, "/login")
}

// fieldErrors extracts the per-field messages of a validation failure.
func fieldErrors(err error) map[string]string {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields()
	}
	return nil
}

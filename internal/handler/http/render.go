// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/utils"
	"github.com/MKhiriev/capability-assessment/internal/view"
)

// render executes page with the common data (current user, pending flash
// messages) filled in. A template failure degrades to a plain 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	p := view.Page{
		Title:   title,
		Flashes: h.popFlashes(w, r),
		Data:    data,
	}
	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		p.User = &user
	}

	if err := h.renderer.Render(w, status, page, p); err != nil {
		logger.FromRequest(r).Err(err).Str("page", page).Msg("rendering page failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, view.PageError, http.StatusText(status), view.ErrorData{Status: status, Message: message})
}

// serverError logs err with the request's trace id and renders the generic
// error page.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).Str("uri", r.RequestURI).Msg("request failed")
	h.renderError(w, r, http.StatusInternalServerError, MsgInternalServerError)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, MsgNotFound)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

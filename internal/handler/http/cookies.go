// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/capability-assessment/internal/view"
	"github.com/MKhiriev/capability-assessment/models"
)

const (
	sessionCookieName = "session"
	flashCookieName   = "flash"

	// maxFlashes bounds how many messages a flash cookie accumulates.
	maxFlashes = 5
)

func (h *Handler) newCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, session models.Session) {
	cookie := h.newCookie(sessionCookieName, session.Token)
	cookie.Expires = session.ExpiresAt
	cookie.MaxAge = int(time.Until(session.ExpiresAt).Seconds())
	http.SetCookie(w, cookie)
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	cookie := h.newCookie(name, "")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
}

// addFlash queues a message for the next rendered page. Messages already
// queued by the current request's cookie are kept.
func (h *Handler) addFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	flashes, _ := readFlashes(r)
	flashes = append(flashes, view.Flash{Category: category, Message: message})
	if len(flashes) > maxFlashes {
		flashes = flashes[len(flashes)-maxFlashes:]
	}
	http.SetCookie(w, h.newCookie(flashCookieName, encodeFlashes(flashes)))
}

// popFlashes returns the queued messages and clears the cookie.
func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) []view.Flash {
	if _, err := r.Cookie(flashCookieName); err != nil {
		return nil
	}

	h.clearCookie(w, flashCookieName)
	flashes, err := readFlashes(r)
	if err != nil {
		return nil
	}
	return flashes
}

func readFlashes(r *http.Request) ([]view.Flash, error) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil, nil
	}
	return decodeFlashes(cookie.Value)
}

// encodeFlashes serialises flashes as newline separated "category|message"
// pairs, base64url encoded so the cookie value stays within the allowed
// character set.
func encodeFlashes(flashes []view.Flash) string {
	lines := make([]string, 0, len(flashes))
	for _, f := range flashes {
		message := strings.ReplaceAll(f.Message, "\n", " ")
		lines = append(lines, f.Category+"|"+message)
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(lines, "\n")))
}

func decodeFlashes(value string) ([]view.Flash, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, ErrInvalidFlashCookie
	}

	var flashes []view.Flash
	for _, line := range strings.Split(string(raw), "\n") {
		category, message, ok := strings.Cut(line, "|")
		if !ok || !knownFlashCategory(category) {
			return nil, ErrInvalidFlashCookie
		}
		flashes = append(flashes, view.Flash{Category: category, Message: message})
	}
	return flashes, nil
}

func knownFlashCategory(category string) bool {
	switch category {
	case view.FlashSuccess, view.FlashError, view.FlashInfo:
		return true
	default:
		return false
	}
}

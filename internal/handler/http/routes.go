// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(h.withBodyLimit)
	router.Use(h.withSession)

	router.Get("/healthz", h.healthz)
	router.Get("/version", h.version)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.index)
		r.Get("/register", h.registerForm)
		r.Post("/register", h.register)
		r.Get("/login", h.loginForm)
		r.Post("/login", h.login)
		r.Get("/logout", h.logoutForm)
		r.Post("/logout", h.logout)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/assess", h.assessForm)
		r.Post("/assess", h.submitAssessment)
		r.Get("/history", h.history)
	})

	// administrator only
	router.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)

		r.Get("/admin", h.admin)
		r.Get("/admin/chart.png", h.adminChart)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}

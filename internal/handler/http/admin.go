// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/capability-assessment/internal/view"
)

func (h *Handler) admin(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.ReportService.AdminReport(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, view.PageAdmin, "Admin", view.NewAdminData(report))
}

// adminChart serves the radar chart as a standalone PNG.
func (h *Handler) adminChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.services.ReportService.RadarChart(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

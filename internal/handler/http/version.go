// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	buildInfo := h.services.AppInfoService.BuildInfo(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(buildInfo.String() + "\n"))
}

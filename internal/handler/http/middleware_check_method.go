// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
// chi calls it when the path matches a route that does not serve the
// requested method; answering 404 instead of 405 keeps callers from
// probing which routes exist.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/capability-assessment/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"

	// maxTraceIDLength bounds a trace ID accepted from the client.
	maxTraceIDLength = 128
)

// withTraceID attaches a request-scoped logger carrying a trace_id field to
// the request context and echoes the ID in the X-Trace-ID response header.
// A well-formed incoming X-Trace-ID is reused, otherwise a new UUIDv7 is
// generated.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = utils.NewTraceID()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

// validTraceID accepts short printable ASCII IDs only, so a client cannot
// inject arbitrary bytes into logs and response headers.
func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the web front end of the application.
//
// It wires the chi router, the HTML page handlers and the middleware chain.
// Request tracing, access logging, response compression and session
// resolution run here before requests reach the service layer. Pages are
// rendered through internal/view; failures are mapped to status codes by
// statusFromError.
package http

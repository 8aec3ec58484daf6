// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP server of the application.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown bounded by a timeout.
package server

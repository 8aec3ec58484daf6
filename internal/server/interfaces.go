// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests until ctx is cancelled or SIGINT, SIGTERM
	// or SIGQUIT arrives, then shuts down gracefully. It returns an error
	// only when the server could not start or stop cleanly.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting connections and waits for active requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}

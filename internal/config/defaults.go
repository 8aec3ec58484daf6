// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DotEnvFile is the optional dotenv file loaded before the environment.
	DotEnvFile = ".env"

	// DevSessionSignKey is used when no sign key is configured and Debug is
	// on. Never use it in production.
	DevSessionSignKey = "dev-insecure-session-key"
)

// Defaults returns the values used for every field no source has set.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer:   "capassess",
			SessionDuration: 24 * time.Hour,
			BcryptCost:      bcrypt.DefaultCost,
			LogLevel:        "info",
		},
		Storage: Storage{
			DB: DB{DSN: "capassess.db"},
		},
		Server: Server{
			HTTPAddress:  "127.0.0.1:5000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// UsesDevSessionKey reports whether the development fallback key is active.
func (cfg *StructuredConfig) UsesDevSessionKey() bool {
	return cfg.App.SessionSignKey == DevSessionSignKey
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// capability assessment server. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: session signing, admin
	// bootstrap, password hashing cost and logging.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and cookie settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SessionSignKey is the HMAC key used to sign session tokens.
	// Env: APP_SESSION_SIGN_KEY
	SessionSignKey string `env:"SESSION_SIGN_KEY"`

	// SessionIssuer is the "iss" claim of every issued session token.
	// Env: APP_SESSION_ISSUER
	SessionIssuer string `env:"SESSION_ISSUER"`

	// SessionDuration is how long a login session stays valid.
	// Env: APP_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// AdminUsername and AdminPassword bootstrap an administrator account at
	// startup. Both must be set together.
	// Env: APP_ADMIN_USERNAME, APP_ADMIN_PASSWORD
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// BcryptCost is the work factor used when hashing passwords.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// LogLevel is the minimum zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Debug enables verbose logging and the development session key
	// fallback.
	// Env: APP_DEBUG
	Debug bool `env:"DEBUG"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is either a SQLite file path (e.g. "capassess.db", ":memory:")
	// or a PostgreSQL URL starting with "postgres://".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the HTTP server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// ReadTimeout bounds reading a whole request including its body.
	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`

	// WriteTimeout bounds writing the response.
	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// SecureCookies marks session and flash cookies as Secure. Enable it
	// when the server sits behind TLS.
	// Env: SERVER_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`
}

// GetStructuredConfig loads, merges and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. .env file in the working directory (if present)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 1-3)
//
// Fields left unset by every source take their value from [Defaults].
func GetStructuredConfig(flags *Flags) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(DotEnvFile).
		withEnv().
		withFlags(flags).
		withJSON().
		build()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the database schema and applies it with goose.
// Each supported dialect keeps its own directory of numbered SQL files.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Dialect names accepted by [Migrate].
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

var (
	// ErrNilDB is returned when Migrate is called without a database.
	ErrNilDB = errors.New("db is nil")
	// ErrUnknownDialect is returned for a dialect without embedded migrations.
	ErrUnknownDialect = errors.New("unknown migration dialect")
)

// Migrate applies every pending migration for dialect and returns the
// resulting schema version.
func Migrate(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("migration error: %w", ErrNilDB)
	}

	provider, err := newProvider(db, dialect)
	if err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration error reading schema version: %w", err)
	}

	return version, nil
}

func newProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	var gooseDialect goose.Dialect
	switch dialect {
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	fsys, err := fs.Sub(embedMigrations, dialectDir(dialect))
	if err != nil {
		return nil, err
	}

	return goose.NewProvider(gooseDialect, db, fsys)
}

func dialectDir(dialect string) string {
	if dialect == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

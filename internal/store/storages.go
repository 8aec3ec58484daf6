// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
)

// Storages bundles the open database and every repository built on it.
type Storages struct {
	DB                   *DB
	UserRepository       UserRepository
	AssessmentRepository AssessmentRepository
}

// NewStorages connects to the configured database, applies pending
// migrations and constructs the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewDB(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	version, err := db.Migrate(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("func", "NewStorages").Int64("schema_version", version).Str("dialect", string(db.dialect)).Msg("database schema is up to date")

	return &Storages{
		DB:                   db,
		UserRepository:       NewUserRepository(db, log),
		AssessmentRepository: NewAssessmentRepository(db, log),
	}, nil
}

// Ping checks that the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}

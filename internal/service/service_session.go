// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/utils"
	"github.com/MKhiriev/capability-assessment/models"
)

// sessionService issues and verifies the signed session tokens carried in
// the session cookie.
type sessionService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// issuer is the "iss" claim embedded in every token. Tokens whose
	// issuer does not match are rejected during parsing.
	issuer string

	duration time.Duration

	now func() time.Time

	logger *logger.Logger
}

func NewSessionService(cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		signKey:  cfg.SessionSignKey,
		issuer:   cfg.SessionIssuer,
		duration: cfg.SessionDuration,
		now:      time.Now,
		logger:   logger,
	}
}

// Issue signs a session for user that expires after the configured
// duration.
func (s *sessionService) Issue(ctx context.Context, user models.User) (models.Session, error) {
	session, err := utils.GenerateJWTToken(s.issuer, user.UserID, s.now(), s.duration, s.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Msg("session signing failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	return session, nil
}

// Parse validates token and returns the user ID it was issued for. Any
// failure (expired, wrong issuer, bad signature, malformed) is normalised
// to ErrSessionInvalid.
func (s *sessionService) Parse(ctx context.Context, token string) (int64, error) {
	userID, err := utils.ValidateAndParseJWTToken(token, s.signKey, s.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("session rejected")
		return 0, ErrSessionInvalid
	}

	return userID, nil
}

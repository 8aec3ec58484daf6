// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/capability-assessment/internal/config"
	"github.com/MKhiriev/capability-assessment/internal/logger"
	"github.com/MKhiriev/capability-assessment/internal/store"
	"github.com/MKhiriev/capability-assessment/internal/validators"
	"github.com/MKhiriev/capability-assessment/models"
)

// dummyPassword is hashed once at construction. Authenticate compares
// against it when the username is unknown so both failure paths run one
// bcrypt comparison.
const dummyPassword = "capassess-timing-equaliser"

// authService is the concrete implementation of AuthService.
// It handles registration and credential verification using a UserRepository
// for persistence and bcrypt for password hashing.
type authService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	// bcryptCost is the work factor of newly created password hashes.
	bcryptCost int

	dummyHash []byte

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) (AuthService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hashing: %w", err)
	}

	return &authService{
		userRepository: userRepository,
		validator:      validators.NewCredentialsValidator(),
		bcryptCost:     cost,
		dummyHash:      dummyHash,
		now:            time.Now,
		logger:         logger,
	}, nil
}

// Register creates a new user account.
//
// The username is trimmed; both fields are validated before anything is
// hashed. Returns the persisted user or:
//   - ErrValidation wrapping a *validators.ValidationError for bad input.
//   - ErrDuplicateUsername if the username is taken.
func (a *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	user, err := a.createUser(ctx, username, password, false)
	if err != nil {
		return models.User{}, err
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// createUser validates the credentials and stores the account with its
// admin flag in a single insert.
func (a *authService) createUser(ctx context.Context, username, password string, isAdmin bool) (models.User, error) {
	log := logger.FromContext(ctx)

	credentials := models.Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Debug().Err(err).Str("username", credentials.Username).Msg("registration rejected by validation")
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     credentials.Username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			log.Info().Str("username", credentials.Username).Msg("username already taken")
			return models.User{}, fmt.Errorf("%w: %w", ErrDuplicateUsername, err)
		}
		log.Err(err).Str("username", credentials.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Authenticate verifies a username and password.
//
// An unknown username, an empty field and a wrong password all yield the
// same ErrInvalidCredentials.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
			log.Info().Str("username", username).Msg("login attempt for unknown user")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (a *authService) UserByID(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// EnsureAdmin creates username as an administrator when it does not exist.
// An existing account is left untouched, whatever its admin flag.
func (a *authService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)

	existing, err := a.userRepository.FindUserByUsername(ctx, username)
	switch {
	case err == nil:
		if !existing.IsAdmin {
			a.logger.Warn().Str("username", username).Msg("configured admin account exists without admin flag; use `admin grant` to promote it")
		}
		return false, nil
	case !errors.Is(err, store.ErrNoUserWasFound):
		return false, fmt.Errorf("admin lookup failed: %w", err)
	}

	user, err := a.createUser(ctx, username, password, true)
	if err != nil {
		return false, err
	}

	a.logger.Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("admin account bootstrapped from configuration")
	return true, nil
}

// SetAdmin grants or revokes the admin flag.
func (a *authService) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	username = strings.TrimSpace(username)

	if err := a.userRepository.SetAdmin(ctx, username, isAdmin); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}
		return fmt.Errorf("changing admin flag failed: %w", err)
	}

	a.logger.Info().Str("username", username).Bool("is_admin", isAdmin).Msg("admin flag changed")
	return nil
}

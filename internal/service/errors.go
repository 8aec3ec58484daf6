// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrValidation wraps a *validators.ValidationError describing every
	// rejected form field.
	ErrValidation = errors.New("validation failed")

	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

var (
	ErrSessionInvalid        = errors.New("session is expired or invalid")
	ErrSessionCreationFailed = errors.New("session creation failed")
)

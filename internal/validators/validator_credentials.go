// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/capability-assessment/models"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

const (
	// MaxUsernameLength bounds usernames, in characters.
	MaxUsernameLength = 64
	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72
)

// CredentialsValidator checks register form input. Username is expected to
// be trimmed already.
type CredentialsValidator struct{}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(_ context.Context, c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldUsername:
			switch {
			case c.Username == "":
				verr.Add(FieldUsername, "Username is required")
			case utf8.RuneCountInString(c.Username) > MaxUsernameLength:
				verr.Add(FieldUsername, fmt.Sprintf("Username must be at most %d characters", MaxUsernameLength))
			case strings.IndexFunc(c.Username, unicode.IsControl) >= 0:
				verr.Add(FieldUsername, "Username contains invalid characters")
			}
		case FieldPassword:
			switch {
			case c.Password == "":
				verr.Add(FieldPassword, "Password is required")
			case len(c.Password) > MaxPasswordBytes:
				verr.Add(FieldPassword, fmt.Sprintf("Password must be at most %d bytes", MaxPasswordBytes))
			}
		default:
			return ErrUnknownField
		}
	}

	return verr.orNil()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID = errors.New("invalid user ID")

	// ErrInvalidInput is matched by every *ValidationError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError is a single user-facing validation message bound to a form
// field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field that failed validation so a form can
// be re-rendered with all messages at once.
type ValidationError struct {
	Errors []FieldError
}

// Add records a failed field.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether at least one field failed.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// Fields maps every failed field to its first message.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, ok := fields[fe.Field]; !ok {
			fields[fe.Field] = fe.Message
		}
	}
	return fields
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// orNil returns nil for an empty collector so callers can return it
// directly.
func (e *ValidationError) orNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account that can log in and submit assessments.
// PasswordHash is a bcrypt digest; the plaintext password never reaches
// this struct.
type User struct {
	// UserID is the database-generated identifier of the user.
	UserID int64 `json:"-"`

	// Username is the unique, trimmed login name.
	Username string `json:"username"`

	// PasswordHash stores the salted bcrypt hash of the password.
	PasswordHash string `json:"-"`

	// IsAdmin grants access to the aggregated admin dashboard.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the moment the account was registered (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the username/password pair submitted through the
// register and login forms.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

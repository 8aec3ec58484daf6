// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is a signed login session handed to the browser in a cookie.
type Session struct {
	// Token is the compact signed JWT stored in the session cookie.
	Token string

	// UserID is the identity the session belongs to.
	UserID int64

	// ExpiresAt is the moment the session stops being accepted.
	ExpiresAt time.Time
}

// SessionClaims is the claim set carried by a session token. The "sub"
// claim holds the user id in base 10.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim into a user id.
func (c *SessionClaims) UserID() (int64, error) {
	subject, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting subject from session: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting session subject to user id: %w", err)
	}

	return userID, nil
}

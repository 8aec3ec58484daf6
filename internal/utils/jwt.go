// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/capability-assessment/models"
)

// ErrInvalidJWTParams is returned by GenerateJWTToken when a required
// parameter is missing.
var ErrInvalidJWTParams = errors.New("invalid params for generating JWT token")

// GenerateJWTToken creates a session token signed with HMAC-SHA256.
//
// The token carries the standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus tokenDuration
//
// issuer, signKey and a positive tokenDuration are required.
//
// Example usage:
//
//	session, err := utils.GenerateJWTToken("capassess", 42, time.Now(), time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, issuedAt time.Time, tokenDuration time.Duration, signKey string) (models.Session, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Session{}, ErrInvalidJWTParams
	}

	expiresAt := issuedAt.Add(tokenDuration)
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Session{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Session{Token: tokenString, UserID: userID, ExpiresAt: expiresAt}, nil
}

// ValidateAndParseJWTToken validates the given session token and returns the
// user ID from its subject.
//
// Validation includes:
//   - Signature verification using tokenSignKey, HS256 only
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim check, exp is required
//   - Subject (sub) claim presence and conversion to int64
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (int64, error) {
	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return 0, err
	}
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user id in token subject: %d", userID)
	}

	return userID, nil
}

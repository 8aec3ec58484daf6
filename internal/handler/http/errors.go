// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrInvalidFlashCookie is returned when the flash cookie cannot be decoded.
// The cookie is dropped and the request continues.
var ErrInvalidFlashCookie = errors.New("invalid flash cookie")

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

// User-facing messages rendered into pages and flashes. Keeping them in one
// place keeps the wording consistent across handlers.
const (
	MsgInvalidLogin    = "Invalid username or password."
	MsgUsernameTaken   = "That username is already taken."
	MsgAccountCreated  = "Account created. You can log in now."
	MsgWelcome         = "Welcome back, %s."
	MsgLoggedOut       = "You have been logged out."
	MsgAssessmentSaved = "Assessment saved."
)

const (
	MsgBadRequest          = "The request could not be understood."
	MsgRequestTooLarge     = "The submitted form is too large."
	MsgForbidden           = "Administrator access required."
	MsgNotFound            = "The page you are looking for does not exist."
	MsgInternalServerError = "Something went wrong. Please try again later."
)

// Package common defines shared constants and sentinel errors used across
// the GymTracker client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Auth errors surfaced to the login/register forms.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailAlreadyInUse  = errors.New("this email is already in use")

	// ErrInvalidSession is returned when the identity provider hands back a
	// session without a resolvable email. Fatal to the call, never retried.
	ErrInvalidSession = errors.New("invalid session")

	// ErrConfirmationRequired means sign-up succeeded but the provider wants
	// an out-of-band email confirmation before the first login.
	ErrConfirmationRequired = errors.New(
		"account created: confirm your email (check your inbox), then log in")
)

// Package apperrors defines the cross-cutting error kinds shared by the
// session and dispatch layers. Components return the specific kind so the
// layer above can decide what to log; handlers fold every unauthorized
// sub-kind into one uniform client-facing message.
package apperrors

import "errors"

var (
	// ErrValidation marks malformed caller input. Not retryable.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks a bad credential or secret. Handlers must not
	// reveal whether the account exists or the secret was wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict marks a duplicate registration attempt.
	ErrConflict = errors.New("conflict")

	// ErrDependencyUnavailable marks a persistence or provider failure.
	// Retry is the caller's decision.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

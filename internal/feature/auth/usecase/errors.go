// Package usecase implements the business logic for the auth feature.
package usecase

import "estate_backend/internal/shared/apperr"

// Aliases of the shared taxonomy so callers of this package can match on familiar names.
var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperr.ErrUserNotFound

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = apperr.ErrDuplicateEmail

	// ErrInvalidPassword is returned by VerifyCredentials when the password does not match.
	ErrInvalidPassword = apperr.ErrInvalidPassword

	// ErrInvalidCredentials is returned by Login for both unknown emails and wrong passwords.
	ErrInvalidCredentials = apperr.ErrInvalidCredentials
)

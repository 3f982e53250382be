// Package apperr defines the error taxonomy shared by every feature.
// Adapters translate driver errors into these sentinels; the HTTP layer maps them to status codes.
package apperr

import "errors"

var (
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrPropertyNotFound is returned when a property cannot be found by ID.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrDuplicateEmail is returned when attempting to register an email that already exists.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrAlreadyPresent is returned when a property is already in a user's favorites or wishlist.
	ErrAlreadyPresent = errors.New("property already present")

	// ErrInvalidPassword is returned when the password does not match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidCredentials is what login callers see for both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for malformed, tampered or wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned for correctly signed tokens past their expiry.
	ErrExpiredToken = errors.New("token expired")
)

// ValidationError carries a human readable reason and unwraps to ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

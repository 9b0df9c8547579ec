package services

import "errors"

// Every failure a service can report maps to exactly one of these, so the
// handler layer can pick a user-facing message without losing the cause.
var (
	ErrInvalidFormat     = errors.New("invalid format")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrNotFound          = errors.New("not found")
	ErrDeactivated       = errors.New("account is deactivated")
	ErrBadCredential     = errors.New("invalid credentials")
	ErrExpired           = errors.New("otp expired")
	ErrMismatch          = errors.New("otp mismatch")
	ErrSessionMismatch   = errors.New("session email mismatch")
	ErrWeakPassword      = errors.New("password too weak")
	ErrMeetingEnded      = errors.New("meeting has ended")
)

// ValidationError is ErrInvalidFormat with the offending field attached,
// so the boundary can pick a field-specific message.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + " format"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidFormat
}

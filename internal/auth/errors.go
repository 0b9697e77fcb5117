package auth

import "errors"

var (
	// ErrUnauthenticated is returned when no valid session is present.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid session token")
)

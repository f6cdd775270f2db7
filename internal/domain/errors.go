package domain

import "errors"

// Error kinds detected locally. Remote failure kinds live in
// pkg/wordpress next to the client that produces them.
var (
	// ErrValidation marks locally rejected input (missing field,
	// priority out of range, unknown status).
	ErrValidation = errors.New("validation failed")

	// ErrAuthRequired means the session lacks the authenticated flag.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials means the remote rejected a login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

package auth

import "errors"

// Auth domain errors
var (
	// ErrInvalidCredentials covers unknown usernames, wrong passwords and
	// deactivated accounts alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers missing, expired and malformed access tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

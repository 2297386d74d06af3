package session

import "errors"

var (
	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = errors.New("session: expired")

	// ErrSessionNotFound indicates no session was found.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session: token generation failed")
)

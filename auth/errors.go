package auth

import "errors"

// General authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
)

// Token-related errors
var (
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrAlreadyConfirmed = errors.New("email already confirmed")
)

// OAuth-specific errors
var (
	ErrInvalidState  = errors.New("oauth: invalid or expired state")
	ErrInvalidCode   = errors.New("oauth: invalid authorization code")
	ErrProfileFetch  = errors.New("oauth: failed to fetch user profile")
	ErrRevokeFailed  = errors.New("oauth: token revocation failed")
	ErrNoAccessToken = errors.New("oauth: no access token in session")
)

package token

import "errors"

var (
	ErrMalformed        = errors.New("malformed token")
	ErrSignatureInvalid = errors.New("signature mismatch")
	ErrExpired          = errors.New("token expired")
)

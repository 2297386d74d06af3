package token

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// Parse verifies the token's signature against the purpose-salted key, checks
// that no more than maxAge has elapsed since issue, and decodes the payload.
func Parse[T any](token, purpose, secret string, maxAge time.Duration) (T, error) {
	var zero T
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return zero, ErrMalformed
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return zero, ErrMalformed
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return zero, ErrMalformed
	}

	if subtle.ConstantTimeCompare(sig, sign(data, purpose, secret)) != 1 {
		return zero, ErrSignatureInvalid
	}

	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, ErrMalformed
	}

	if time.Since(time.Unix(env.IssuedAt, 0)) > maxAge {
		return zero, ErrExpired
	}

	return env.Payload, nil
}

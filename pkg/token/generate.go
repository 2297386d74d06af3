package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"
)

// envelope wraps the caller payload with its issue time.
type envelope[T any] struct {
	Payload  T     `json:"p"`
	IssuedAt int64 `json:"iat"`
}

// Generate creates a token by JSON encoding the payload together with the
// current time and appending an 8-byte truncated HMAC-SHA256 signature.
// The purpose string salts the signing key.
func Generate[T any](payload T, purpose, secret string) (string, error) {
	return generateAt(payload, purpose, secret, time.Now())
}

func generateAt[T any](payload T, purpose, secret string, issuedAt time.Time) (string, error) {
	data, err := json.Marshal(envelope[T]{Payload: payload, IssuedAt: issuedAt.Unix()})
	if err != nil {
		return "", err
	}

	payloadEnc := base64.RawURLEncoding.EncodeToString(data)
	sigEnc := base64.RawURLEncoding.EncodeToString(sign(data, purpose, secret))

	return payloadEnc + "." + sigEnc, nil
}

// sign computes the truncated HMAC over data with a purpose-salted key.
func sign(data []byte, purpose, secret string) []byte {
	key := hmac.New(sha256.New, []byte(secret))
	key.Write([]byte(purpose))

	h := hmac.New(sha256.New, key.Sum(nil))
	h.Write(data)
	return h.Sum(nil)[:8]
}

// Package token provides compact, signed, time-limited tokens for embedding
// JSON payloads in links.
//
// Tokens carry their issue time and use HMAC-SHA256 with a truncated 8-byte
// signature. The purpose string is mixed into the signing key, so a token
// minted for one workflow (say, email confirmation) fails signature
// verification when presented to another (password reset). Suitable for
// email confirmations, password resets, and invite links. Not recommended
// for high-value or long-lived tokens.
//
// Token format: base64url(envelope).base64url(signature)
//
// # Usage
//
//	const secret = "my-very-strong-secret"
//
//	tok, err := token.Generate("alice@example.com", "email-confirm", secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	email, err := token.Parse[string](tok, "email-confirm", secret, time.Hour)
//	if err != nil {
//	    // token.ErrMalformed, token.ErrSignatureInvalid or token.ErrExpired
//	}
package token

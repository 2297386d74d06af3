// Package session binds a succession of HTTP requests to one authenticated
// identity. Sessions live server-side behind a Store (in-memory by default,
// Redis optionally) and are referenced from the client by an opaque token
// carried in an encrypted cookie.
//
// The manager rotates the token when a session is upgraded from anonymous to
// authenticated, which defeats session fixation. Flash messages (one-shot
// notices shown on the next page render) ride along in session data.
package session

// Package web wires the HTTP surface: the chi router, the page handlers for
// signup, login, verification, password reset and the Google OAuth flow, the
// authentication and permission middleware, and the embedded views and
// static assets.
package web

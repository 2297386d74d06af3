// Package email sends transactional email through the Brevo (Sendinblue)
// HTTP API, behind a small EmailSender interface so handlers and services
// never depend on the provider directly. A DevSender writes messages to disk
// for local development instead of calling out.
package email

// Package mail composes the application's transactional emails and hands
// them to a sender. It owns message copy and link construction; delivery
// mechanics live in pkg/email.
package mail

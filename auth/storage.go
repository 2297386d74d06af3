package auth

import (
	"context"
	"time"
)

// Storage defines the persistence operations required by the account
// workflows. Implementations map driver-level uniqueness violations to
// ErrUserExists and missing rows to ErrUserNotFound.
type Storage interface {
	// CreateUser inserts the user and fills in its generated ID.
	CreateUser(ctx context.Context, user *User) error

	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)

	// UserExists reports whether any record matches the email or the
	// username (exact match, per store collation).
	UserExists(ctx context.Context, email, username string) (bool, error)

	// SetEmailConfirmed marks the address confirmed at the given time.
	SetEmailConfirmed(ctx context.Context, email string, at time.Time) error

	// UpdatePasswordHash overwrites the stored hash for the address.
	UpdatePasswordHash(ctx context.Context, email string, hash []byte) error
}

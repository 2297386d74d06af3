package auth

import "time"

// Token purposes. Each purpose salts the token signature, so a confirmation
// token can never pass as a reset token and vice versa.
const (
	PurposeEmailConfirm  = "email-confirm"
	PurposeResetPassword = "reset-password"
)

// DefaultRoleID is the role assigned to every new account. It carries the
// starting feature grant for regular members.
const DefaultRoleID int64 = 2

// User represents a user account. PasswordHash is nil for OAuth-only
// accounts; GoogleID is nil for password-only accounts. An account is always
// authenticatable by at least one of the two.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     []byte
	RoleID           int64
	EmailConfirmed   bool
	EmailConfirmedOn *time.Time
	GoogleID         *string
	CreatedAt        time.Time
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u != nil && len(u.PasswordHash) > 0
}

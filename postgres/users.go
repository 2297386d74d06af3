package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/callmefred/thebestapp/auth"
	"github.com/callmefred/thebestapp/pkg/pg"
)

// UserStorage persists user records. It satisfies auth.Storage.
type UserStorage struct {
	pool *pgxpool.Pool
}

var _ auth.Storage = (*UserStorage)(nil)

// NewUserStorage creates a user storage backed by the pool.
func NewUserStorage(pool *pgxpool.Pool) *UserStorage {
	return &UserStorage{pool: pool}
}

const userColumns = `id, username, email, password, role_id, email_confirmed, email_confirmed_on, google_id, created_on`

func (s *UserStorage) scanUser(row interface{ Scan(dest ...any) error }) (*auth.User, error) {
	var user auth.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.RoleID,
		&user.EmailConfirmed,
		&user.EmailConfirmedOn,
		&user.GoogleID,
		&user.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts the user and fills in its generated ID. A unique
// constraint hit on email or username maps to auth.ErrUserExists.
func (s *UserStorage) CreateUser(ctx context.Context, user *auth.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password, role_id, email_confirmed, email_confirmed_on, google_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.RoleID,
		user.EmailConfirmed,
		user.EmailConfirmedOn,
		user.GoogleID,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return auth.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.scanUser(row)
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return s.scanUser(row)
}

func (s *UserStorage) GetUserByGoogleID(ctx context.Context, googleID string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
	return s.scanUser(row)
}

// UserExists reports whether any record matches the email or the username.
func (s *UserStorage) UserExists(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// SetEmailConfirmed marks the address confirmed at the given time.
func (s *UserStorage) SetEmailConfirmed(ctx context.Context, email string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET email_confirmed = TRUE, email_confirmed_on = $2 WHERE email = $1`,
		email, at,
	)
	if err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// UpdatePasswordHash overwrites the stored hash for the address.
func (s *UserStorage) UpdatePasswordHash(ctx context.Context, email string, hash []byte) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password = $2 WHERE email = $1`,
		email, hash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/callmefred/thebestapp/pkg/token"
)

// Service implements the password-based account workflows.
type Service struct {
	storage Storage
	cfg     Config
	logger  *slog.Logger
}

// Option configures the service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates the account service.
func NewService(storage Storage, cfg Config, opts ...Option) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	s := &Service{
		storage: storage,
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeEmail lowercases and trims an address so lookups and uniqueness
// checks compare the same form everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new unconfirmed user with a hashed password and the
// default role. Duplicate email or username yields ErrUserExists without
// touching the store.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)

	exists, err := s.storage.UserExists(ctx, email, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       DefaultRoleID,
		CreatedAt:    time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		// A concurrent signup can still hit the unique constraint.
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies email and password. Any mismatch, including an
// unknown address, returns ErrInvalidCredentials; a valid pair on an
// unconfirmed account returns ErrEmailNotConfirmed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	return user, nil
}

// VerificationToken mints a confirmation token for the address.
func (s *Service) VerificationToken(email string) (string, error) {
	tok, err := token.Generate(NormalizeEmail(email), PurposeEmailConfirm, s.cfg.TokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification token: %w", err)
	}
	return tok, nil
}

// ConfirmEmail validates a confirmation token and marks the address
// confirmed. Bad signature, wrong purpose and expiry all collapse to
// ErrTokenInvalid so the caller cannot tell them apart. A second
// confirmation of the same address returns ErrAlreadyConfirmed and must not
// trigger another welcome notification.
func (s *Service) ConfirmEmail(ctx context.Context, tokenStr string) (*User, error) {
	email, err := token.Parse[string](tokenStr, PurposeEmailConfirm, s.cfg.TokenSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.EmailConfirmed {
		return user, ErrAlreadyConfirmed
	}

	now := time.Now()
	if err := s.storage.SetEmailConfirmed(ctx, email, now); err != nil {
		return nil, fmt.Errorf("failed to confirm email: %w", err)
	}

	user.EmailConfirmed = true
	user.EmailConfirmedOn = &now
	return user, nil
}

// ResendVerification re-mints a confirmation token for an already registered
// address. The password is not re-validated.
func (s *Service) ResendVerification(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)

	if _, err := s.storage.GetUserByEmail(ctx, email); err != nil {
		return "", ErrUserNotFound
	}

	return s.VerificationToken(email)
}

// PasswordResetRequest contains the minted reset token and its deadline.
type PasswordResetRequest struct {
	Email     string
	Token     string
	ExpiresAt time.Time
}

// ResetToken mints a password reset token for an existing address. A missing
// address returns ErrUserNotFound; the request-reset page reports that to
// the visitor, which leaks account existence. Kept on purpose, see DESIGN.md.
func (s *Service) ResetToken(ctx context.Context, email string) (*PasswordResetRequest, error) {
	email = NormalizeEmail(email)

	if _, err := s.storage.GetUserByEmail(ctx, email); err != nil {
		return nil, ErrUserNotFound
	}

	tok, err := token.Generate(email, PurposeResetPassword, s.cfg.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	return &PasswordResetRequest{
		Email:     email,
		Token:     tok,
		ExpiresAt: time.Now().Add(s.cfg.TokenTTL),
	}, nil
}

// ValidateResetToken checks a reset token and returns the embedded address.
func (s *Service) ValidateResetToken(tokenStr string) (string, error) {
	email, err := token.Parse[string](tokenStr, PurposeResetPassword, s.cfg.TokenSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", ErrTokenInvalid
	}
	return email, nil
}

// ResetPassword validates the reset token and overwrites the stored hash.
func (s *Service) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	email, err := s.ValidateResetToken(tokenStr)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.storage.UpdatePasswordHash(ctx, email, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

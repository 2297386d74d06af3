package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/callmefred/thebestapp/auth"
)

func testConfig() auth.Config {
	return auth.Config{
		TokenSecret: "test-secret-key",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
	}
}

func hashPassword(t *testing.T, password string) []byte {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates unconfirmed user with default role", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("UserExists", ctx, "fred@example.com", "fred").Return(false, nil)
		storage.On("CreateUser", ctx, mock.AnythingOfType("*auth.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*auth.User).ID = 42
			}).Return(nil)

		svc := auth.NewService(storage, testConfig())

		user, err := svc.Register(ctx, "fred", "Fred@Example.COM ", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)
		assert.Equal(t, "fred@example.com", user.Email)
		assert.Equal(t, auth.DefaultRoleID, user.RoleID)
		assert.False(t, user.EmailConfirmed)
		assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("hunter22")))
		storage.AssertExpectations(t)
	})

	t.Run("duplicate email or username", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("UserExists", ctx, "fred@example.com", "fred").Return(true, nil)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.Register(ctx, "fred", "fred@example.com", "hunter22")
		assert.ErrorIs(t, err, auth.ErrUserExists)
		storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate surfaces from the store", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("UserExists", ctx, "fred@example.com", "fred").Return(false, nil)
		storage.On("CreateUser", ctx, mock.AnythingOfType("*auth.User")).Return(auth.ErrUserExists)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.Register(ctx, "fred", "fred@example.com", "hunter22")
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})
}

func TestService_Authenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hash := hashPassword(t, "hunter22")

	confirmed := func() *auth.User {
		now := time.Now()
		return &auth.User{
			ID:               7,
			Username:         "fred",
			Email:            "fred@example.com",
			PasswordHash:     hash,
			RoleID:           auth.DefaultRoleID,
			EmailConfirmed:   true,
			EmailConfirmedOn: &now,
		}
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(confirmed(), nil)

		svc := auth.NewService(storage, testConfig())

		user, err := svc.Authenticate(ctx, "FRED@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrUserNotFound)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.Authenticate(ctx, "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(confirmed(), nil)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.Authenticate(ctx, "fred@example.com", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("provider-only account has no password", func(t *testing.T) {
		t.Parallel()

		user := confirmed()
		user.PasswordHash = nil

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(user, nil)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.Authenticate(ctx, "fred@example.com", "hunter22")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unconfirmed email blocks login", func(t *testing.T) {
		t.Parallel()

		user := confirmed()
		user.EmailConfirmed = false
		user.EmailConfirmedOn = nil

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(user, nil)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.Authenticate(ctx, "fred@example.com", "hunter22")
		assert.ErrorIs(t, err, auth.ErrEmailNotConfirmed)
	})
}

func TestService_ConfirmEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid token confirms the address", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(&auth.User{
			ID:    7,
			Email: "fred@example.com",
		}, nil)
		storage.On("SetEmailConfirmed", ctx, "fred@example.com", mock.AnythingOfType("time.Time")).Return(nil)

		svc := auth.NewService(storage, testConfig())

		tok, err := svc.VerificationToken("fred@example.com")
		require.NoError(t, err)

		user, err := svc.ConfirmEmail(ctx, tok)
		require.NoError(t, err)
		assert.True(t, user.EmailConfirmed)
		require.NotNil(t, user.EmailConfirmedOn)
		storage.AssertExpectations(t)
	})

	t.Run("second confirmation is flagged, not re-applied", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(&auth.User{
			ID:               7,
			Email:            "fred@example.com",
			EmailConfirmed:   true,
			EmailConfirmedOn: &now,
		}, nil)

		svc := auth.NewService(storage, testConfig())

		tok, err := svc.VerificationToken("fred@example.com")
		require.NoError(t, err)

		user, err := svc.ConfirmEmail(ctx, tok)
		assert.ErrorIs(t, err, auth.ErrAlreadyConfirmed)
		require.NotNil(t, user)
		storage.AssertNotCalled(t, "SetEmailConfirmed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		svc := auth.NewService(new(mockStorage), testConfig())

		_, err := svc.ConfirmEmail(ctx, "not-a-token")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("reset token is rejected for confirmation", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(&auth.User{
			ID:    7,
			Email: "fred@example.com",
		}, nil)

		svc := auth.NewService(storage, testConfig())

		req, err := svc.ResetToken(ctx, "fred@example.com")
		require.NoError(t, err)

		_, err = svc.ConfirmEmail(ctx, req.Token)
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})
}

func TestService_ResendVerification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("known address gets a fresh token", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(&auth.User{
			ID:    7,
			Email: "fred@example.com",
		}, nil)

		svc := auth.NewService(storage, testConfig())

		tok, err := svc.ResendVerification(ctx, "fred@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, tok)
	})

	t.Run("unknown address", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrUserNotFound)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.ResendVerification(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}

func TestService_PasswordReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("full reset flow", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "fred@example.com").Return(&auth.User{
			ID:    7,
			Email: "fred@example.com",
		}, nil)
		storage.On("UpdatePasswordHash", ctx, "fred@example.com", mock.AnythingOfType("[]uint8")).
			Run(func(args mock.Arguments) {
				hash := args.Get(2).([]byte)
				assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("new-password")))
			}).Return(nil)

		svc := auth.NewService(storage, testConfig())

		req, err := svc.ResetToken(ctx, "fred@example.com")
		require.NoError(t, err)
		assert.Equal(t, "fred@example.com", req.Email)
		assert.WithinDuration(t, time.Now().Add(time.Hour), req.ExpiresAt, time.Minute)

		email, err := svc.ValidateResetToken(req.Token)
		require.NoError(t, err)
		assert.Equal(t, "fred@example.com", email)

		require.NoError(t, svc.ResetPassword(ctx, req.Token, "new-password"))
		storage.AssertExpectations(t)
	})

	t.Run("unknown address cannot request a reset", func(t *testing.T) {
		t.Parallel()

		storage := new(mockStorage)
		storage.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrUserNotFound)

		svc := auth.NewService(storage, testConfig())

		_, err := svc.ResetToken(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("tampered reset token", func(t *testing.T) {
		t.Parallel()

		svc := auth.NewService(new(mockStorage), testConfig())

		err := svc.ResetPassword(ctx, "tampered.token.value", "new-password")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})
}

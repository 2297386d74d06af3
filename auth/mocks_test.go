package auth_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/callmefred/thebestapp/auth"
)

// mockStorage is a testify mock for the auth.Storage interface.
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockStorage) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockStorage) GetUserByGoogleID(ctx context.Context, googleID string) (*auth.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockStorage) UserExists(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockStorage) SetEmailConfirmed(ctx context.Context, email string, at time.Time) error {
	args := m.Called(ctx, email, at)
	return args.Error(0)
}

func (m *mockStorage) UpdatePasswordHash(ctx context.Context, email string, hash []byte) error {
	args := m.Called(ctx, email, hash)
	return args.Error(0)
}

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callmefred/thebestapp/pkg/session"
)

func TestMemoryStore_CRUD(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)
	ctx := context.Background()

	sess := session.NewSession("tok-1", nil, time.Hour)
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	got.Set("email", "alice@example.com")
	require.NoError(t, store.Update(ctx, got))

	again, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	email, ok := again.GetString("email")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMemoryStore_ExpiredSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)
	ctx := context.Background()

	sess := session.NewSession("tok-expired", nil, -time.Minute)
	require.NoError(t, store.Create(ctx, sess))

	_, err := store.Get(ctx, "tok-expired")
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)

	err := store.Update(context.Background(), session.NewSession("ghost", nil, time.Hour))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

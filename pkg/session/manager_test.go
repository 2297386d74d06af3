package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callmefred/thebestapp/pkg/cookie"
	"github.com/callmefred/thebestapp/pkg/session"
)

func newManager(t *testing.T) *session.Manager {
	t.Helper()

	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)

	mgr, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	return session.New(
		session.WithStore(store),
		session.WithTransport(session.NewCookieTransport(mgr, "sid")),
	)
}

func carryCookies(t *testing.T, rec *httptest.ResponseRecorder, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestManager_EnsureCreatesAnonymousSession(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	sess, err := m.Ensure(context.Background(), rec, req)
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())

	// The issued cookie resolves to the same session.
	next := carryCookies(t, rec, "/")
	got, err := m.Get(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestManager_AuthenticateRotatesToken(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	anon, err := m.Ensure(context.Background(), rec, req)
	require.NoError(t, err)
	anonToken := anon.Token

	loginReq := carryCookies(t, rec, "/login")
	loginRec := httptest.NewRecorder()

	authed, err := m.Authenticate(context.Background(), loginRec, loginReq, 42)
	require.NoError(t, err)
	require.True(t, authed.IsAuthenticated())
	assert.EqualValues(t, 42, *authed.UserID)
	assert.NotEqual(t, anonToken, authed.Token, "login must rotate the session token")

	// The pre-login token must be dead.
	stale := carryCookies(t, rec, "/")
	_, err = m.Get(context.Background(), stale)
	assert.Error(t, err)
}

func TestManager_DestroyDeletesSession(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Ensure(context.Background(), rec, req)
	require.NoError(t, err)

	authedReq := carryCookies(t, rec, "/logout")
	outRec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(context.Background(), outRec, authedReq))

	_, err = m.Get(context.Background(), authedReq)
	assert.Error(t, err)
}

func TestManager_FlashRoundTrip(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, m.Flash(context.Background(), rec, req, "error", "Invalid email or password."))

	next := carryCookies(t, rec, "/login")
	flashes := m.PopFlashes(context.Background(), next)
	require.Len(t, flashes, 1)
	assert.Equal(t, "error", flashes[0].Category)
	assert.Equal(t, "Invalid email or password.", flashes[0].Message)

	// Flashes are one-shot.
	assert.Empty(t, m.PopFlashes(context.Background(), next))
}

func TestManager_MiddlewareInjectsSession(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Ensure(context.Background(), rec, req)
	require.NoError(t, err)

	var seen bool
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = session.FromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), carryCookies(t, rec, "/"))
	assert.True(t, seen)
}

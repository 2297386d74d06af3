package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
)

// Manager handles session operations.
type Manager struct {
	store     Store
	transport Transport
	config    Config
}

// New creates a session manager. A store and transport are required; the
// memory store is the default when none is given.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		// Fail fast on misconfiguration rather than serving without cookies.
		panic("session: transport is required")
	}

	return m
}

// Ensure retrieves the request's session or creates an anonymous one.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err == nil {
		return session, nil
	}
	_ = m.transport.ClearToken(w)

	session, err = m.createSession(ctx, nil)
	if err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, session.Token, m.config.AnonTTL); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}

	return session, nil
}

// Get retrieves an existing, unexpired session.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Save persists changed session data.
func (m *Manager) Save(ctx context.Context, session *Session) error {
	return m.store.Update(ctx, session)
}

// Authenticate binds the session to a user. An existing session keeps its
// data but gets a fresh token, so a pre-login token can never be replayed as
// an authenticated one.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int64) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err != nil {
		session, err = m.createSession(ctx, &userID)
		if err != nil {
			return nil, err
		}
	} else {
		newToken, err := generateToken()
		if err != nil {
			return nil, err
		}

		_ = m.store.Delete(ctx, session.Token)

		session.Token = newToken
		session.UserID = &userID
		session.ExpiresAt = session.CreatedAt.Add(m.config.AuthTTL)

		if err := m.store.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := m.transport.SetToken(w, session.Token, m.config.AuthTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// Destroy deletes the session and clears the client token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

// Flash queues a one-shot notice on the request's session, creating an
// anonymous session if none exists yet.
func (m *Manager) Flash(ctx context.Context, w http.ResponseWriter, r *http.Request, category, message string) error {
	session, err := m.Ensure(ctx, w, r)
	if err != nil {
		return err
	}
	session.AddFlash(category, message)
	return m.store.Update(ctx, session)
}

// PopFlashes drains queued notices from the request's session, if any.
func (m *Manager) PopFlashes(ctx context.Context, r *http.Request) []Flash {
	session, err := m.Get(ctx, r)
	if err != nil {
		return nil
	}

	flashes := session.PopFlashes()
	if len(flashes) > 0 {
		_ = m.store.Update(ctx, session)
	}
	return flashes
}

func (m *Manager) createSession(ctx context.Context, userID *int64) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	ttl := m.config.AnonTTL
	if userID != nil {
		ttl = m.config.AuthTTL
	}

	session := NewSession(token, userID, ttl)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", ErrTokenGeneration
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package session

import (
	"time"

	"github.com/google/uuid"
)

const flashKey = "_flashes"

// Flash is a one-shot notice stored in the session until the next render.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session represents a user session with associated data.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Token     string         `json:"token"`
	UserID    *int64         `json:"user_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewSession creates a new session with the given parameters.
func NewSession(token string, userID *int64, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		Data:      make(map[string]any),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsAuthenticated returns true if the session has a user ID.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// AddFlash queues a one-shot notice for the next page render.
func (s *Session) AddFlash(category, message string) {
	if s == nil {
		return
	}
	flashes := s.flashes()
	s.Set(flashKey, append(flashes, Flash{Category: category, Message: message}))
}

// PopFlashes returns all queued flashes and removes them from the session.
func (s *Session) PopFlashes() []Flash {
	if s == nil {
		return nil
	}
	flashes := s.flashes()
	s.Delete(flashKey)
	return flashes
}

// flashes decodes the flash slice, tolerating the generic shape JSON stores
// hand back after a round-trip.
func (s *Session) flashes() []Flash {
	raw, ok := s.Get(flashKey)
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []Flash:
		return v
	case []any:
		out := make([]Flash, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			f := Flash{}
			if c, ok := m["category"].(string); ok {
				f.Category = c
			}
			if msg, ok := m["message"].(string); ok {
				f.Message = msg
			}
			out = append(out, f)
		}
		return out
	default:
		return nil
	}
}

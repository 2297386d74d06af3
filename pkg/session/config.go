package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	AnonTTL time.Duration `env:"SESSION_ANON_TTL" envDefault:"24h"`
	AuthTTL time.Duration `env:"SESSION_AUTH_TTL" envDefault:"720h"`

	// CleanupInterval for expired sessions in the memory store (0 disables).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// RedisURL selects the Redis store when set; empty keeps the memory store.
	RedisURL string `env:"REDIS_URL"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		AnonTTL:         24 * time.Hour,
		AuthTTL:         30 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

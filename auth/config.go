package auth

import "time"

// Config holds the account service configuration.
type Config struct {
	// TokenSecret signs verification and reset tokens.
	TokenSecret string `env:"SECRET_KEY,required"`

	// TokenTTL is the validity window for verification and reset tokens.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"3600s"`

	// BcryptCost tunes password hashing; the default balances login latency
	// against brute-force resistance.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

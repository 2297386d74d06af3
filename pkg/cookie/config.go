package cookie

import "strings"

// Config holds cookie manager configuration. Secrets is a comma-separated
// list; the first entry is the active key, the rest are rotation fallbacks.
type Config struct {
	Secrets string `env:"COOKIE_SECRETS,required"`
	Secure  bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

// NewFromConfig creates a Manager from an env-loaded Config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var secrets []string
	for _, s := range strings.Split(cfg.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	configOpts := make([]Option, 0, len(opts)+1)
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(true))
	}
	configOpts = append(configOpts, opts...)

	return New(secrets, configOpts...)
}

// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Each struct type is parsed once per process; later calls return the cached
// value so every component sees the same configuration.
//
//	type DatabaseConfig struct {
//		Host string `env:"DB_HOST" envDefault:"localhost"`
//		Pass string `env:"DB_PASS,required"`
//	}
//
//	var cfg DatabaseConfig
//	config.MustLoad(&cfg)
package config

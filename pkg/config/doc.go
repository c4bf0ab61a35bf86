// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - the default .env file is read once per process if it exists;
//   - any struct annotated with `env` tags can be populated with Load;
//   - each struct type is parsed once and cached, so hot paths can call Load
//     freely;
//   - LoadEnv, Reload and ResetCache exist for tools and tests that need to
//     change the environment after start-up.
//
// # Usage
//
//	type Config struct {
//		Digits    int    `env:"TOTP_DIGITS" envDefault:"6"`
//		Period    int    `env:"TOTP_PERIOD" envDefault:"30"`
//		Algorithm string `env:"TOTP_ALGORITHM" envDefault:"SHA1"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Errors are wrapped with errors.Join around the package sentinels
// ErrParsingConfig, ErrLoadingEnvFile and ErrNilPointer.
package config

package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.RWMutex
	cache = make(map[reflect.Type]any)

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v using `env` struct tags.
//
// The default .env file in the working directory is loaded once per process
// if present. Every struct type is parsed only once; later calls for the same
// type receive a copy of the cached value. Use Reload to bypass the cache.
//
// Example:
//
//	type Config struct {
//		Digits int    `env:"TOTP_DIGITS" envDefault:"6"`
//		Issuer string `env:"TOTP_ISSUER,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// A missing .env is fine; the process environment is used as is.
		_ = godotenv.Load()
	})

	key := typeKey[T]()

	mu.RLock()
	cached, ok := cache[key]
	mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	return parse(key, v)
}

// MustLoad works like Load but panics if configuration loading fails.
// Intended for start-up code where a broken configuration must stop the process.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reload parses the environment into v regardless of the cache and replaces
// the cached value for T.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	return parse(typeKey[T](), v)
}

// LoadEnv loads the given .env files into the process environment. Values in
// later files override earlier ones and the existing environment. The cache is
// cleared so the next Load observes the new values.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	ResetCache()
	return nil
}

// MustLoadEnv is LoadEnv that panics on error.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// ResetCache drops every cached configuration value.
func ResetCache() {
	mu.Lock()
	clear(cache)
	mu.Unlock()
}

func parse[T any](key reflect.Type, v *T) error {
	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	cache[key] = parsed
	mu.Unlock()

	*v = parsed
	return nil
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

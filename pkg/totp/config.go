package totp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"strings"

	"github.com/shopquote/authkit/pkg/config"
)

// Algorithm names the HMAC hash function, spelled as in otpauth URIs.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

const (
	DefaultDigits    = 6    // RFC 4226 code length
	DefaultPeriod    = 30   // RFC 6238 time step in seconds
	DefaultAlgorithm = SHA1 // what every authenticator app supports

	SecretSize    = 20 // bytes drawn by GenerateSecret (160 bits)
	MinSecretSize = 10 // 80 bits, the RFC 4226 minimum
)

// Hash returns the hash constructor for a. Names are case-insensitive.
func (a Algorithm) Hash() (func() hash.Hash, error) {
	switch Algorithm(strings.ToUpper(string(a))) {
	case SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// Config holds the code parameters shared with the authenticator app plus
// the process-level settings read from the environment.
type Config struct {
	Digits    int       `env:"TOTP_DIGITS" envDefault:"6"`
	Period    int       `env:"TOTP_PERIOD" envDefault:"30"`
	Algorithm Algorithm `env:"TOTP_ALGORITHM" envDefault:"SHA1"`

	Issuer        string `env:"TOTP_ISSUER"`         // default issuer shown in authenticator apps
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY"` // base64, 32 bytes; only needed for SealSecret
}

// DefaultConfig returns the RFC 6238 defaults: 6 digits, 30 seconds, SHA1.
func DefaultConfig() Config {
	return Config{
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
		Algorithm: DefaultAlgorithm,
	}
}

// WithDefaults returns a copy with zero-valued code parameters set to the defaults
// and the algorithm name upper-cased.
func (c Config) WithDefaults() Config {
	if c.Digits == 0 {
		c.Digits = DefaultDigits
	}
	if c.Period == 0 {
		c.Period = DefaultPeriod
	}
	if c.Algorithm == "" {
		c.Algorithm = DefaultAlgorithm
	}
	c.Algorithm = Algorithm(strings.ToUpper(string(c.Algorithm)))
	return c
}

// Validate reports whether the code parameters are usable.
func (c Config) Validate() error {
	if c.Digits < 6 || c.Digits > 8 {
		return errors.Join(ErrInvalidConfig, ErrInvalidDigits)
	}
	if c.Period <= 0 {
		return errors.Join(ErrInvalidConfig, ErrInvalidPeriod)
	}
	if _, err := c.Algorithm.Hash(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// IsDefault reports whether c uses the parameters authenticator apps assume
// when an otpauth URI omits them.
func (c Config) IsDefault() bool {
	c = c.WithDefaults()
	return c.Digits == DefaultDigits && c.Period == DefaultPeriod && c.Algorithm == DefaultAlgorithm
}

// LoadConfig reads Config from the environment (and .env) and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

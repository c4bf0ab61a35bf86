package totp

import (
	"context"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"errors"
	"hash"
	"log/slog"
	"time"

	"github.com/shopquote/authkit/pkg/base32"
	"github.com/shopquote/authkit/pkg/logger"
)

// window lists the counter offsets accepted by Verify, in evaluation order.
var window = [...]int64{-1, 0, 1}

// Engine generates and verifies time-based codes for one set of parameters.
// It is immutable after New and safe for concurrent use.
type Engine struct {
	cfg  Config
	hash func() hash.Hash
	now  func() time.Time
	log  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the code parameters. Zero fields fall back to the defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithClock replaces time.Now. Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for debug events. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New builds an Engine. The default is SHA1, 6 digits, 30 seconds, time.Now
// and a discarding logger.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg: DefaultConfig(),
		now: time.Now,
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.cfg = e.cfg.WithDefaults()
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	e.hash, _ = e.cfg.Algorithm.Hash()
	e.log = e.log.With(logger.Component("totp"), logger.Algorithm(string(e.cfg.Algorithm)))

	return e, nil
}

// MustNew is New that panics on an invalid configuration.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the effective parameters.
func (e *Engine) Config() Config { return e.cfg }

// GenerateSecret draws SecretSize bytes from crypto/rand and returns them
// base32 encoded without padding.
func (e *Engine) GenerateSecret() (string, error) {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		e.log.Error("secret generation failed", logger.Error(err))
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	e.log.Debug("secret generated", logger.Event("secret_generated"))
	return base32.Encode(secret), nil
}

// HOTP computes the RFC 4226 code for counter with the engine's digits and algorithm.
func (e *Engine) HOTP(secret []byte, counter uint64) string {
	return hotp(e.hash, secret, counter, e.cfg.Digits)
}

// Counter returns floor(unix(t) / period). Times before the epoch yield false.
func (e *Engine) Counter(t time.Time) (uint64, bool) {
	c := e.counter(t)
	if c < 0 {
		return 0, false
	}
	return uint64(c), true
}

func (e *Engine) counter(t time.Time) int64 {
	sec, period := t.Unix(), int64(e.cfg.Period)
	c := sec / period
	if sec%period != 0 && sec < 0 {
		c--
	}
	return c
}

// Generate returns the code for the current time step.
func (e *Engine) Generate(secret string) (string, error) {
	return e.GenerateAt(secret, e.now())
}

// GenerateAt returns the code for the time step containing t. Unlike Verify
// it rejects garbled secrets.
func (e *Engine) GenerateAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	c, ok := e.Counter(t)
	if !ok {
		return "", ErrInvalidTime
	}
	return e.HOTP(key, c), nil
}

// Verify reports whether token matches the previous, current or next time step.
func (e *Engine) Verify(token, secret string) bool {
	_, ok := e.Match(token, secret, e.now())
	return ok
}

// VerifyAt is Verify evaluated at t instead of the engine clock.
func (e *Engine) VerifyAt(token, secret string, t time.Time) bool {
	_, ok := e.Match(token, secret, t)
	return ok
}

// VerifyContext is Verify with the outcome logged against ctx, so request
// scoped attributes such as logger.ContextWithUserID end up on the record.
func (e *Engine) VerifyContext(ctx context.Context, token, secret string) bool {
	_, ok := e.MatchContext(ctx, token, secret, e.now())
	return ok
}

// Match checks token against the steps around t and returns the counter that
// matched. The secret is decoded leniently and malformed input simply fails
// to match. Callers that need replay protection can store the returned
// counter and reject tokens whose counter is not greater.
func (e *Engine) Match(token, secret string, t time.Time) (uint64, bool) {
	return e.MatchContext(context.Background(), token, secret, t)
}

// MatchContext is Match logging with ctx.
func (e *Engine) MatchContext(ctx context.Context, token, secret string, t time.Time) (uint64, bool) {
	key := base32.Decode(secret)
	current := e.counter(t)

	for _, delta := range window {
		c := current + delta
		if c < 0 {
			continue
		}
		code := e.HOTP(key, uint64(c))
		if subtle.ConstantTimeCompare([]byte(code), []byte(token)) == 1 {
			e.log.DebugContext(ctx, "code accepted", logger.Event("code_accepted"), logger.Counter(uint64(c)))
			return uint64(c), true
		}
	}

	e.log.DebugContext(ctx, "code rejected", logger.Event("code_rejected"))
	return 0, false
}

// ValidateSecret checks that secret is strict base32 carrying at least
// MinSecretSize bytes.
func ValidateSecret(secret string) error {
	_, err := decodeSecret(secret)
	return err
}

func decodeSecret(secret string) ([]byte, error) {
	key, err := base32.DecodeStrict(secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	if len(key) < MinSecretSize {
		return nil, errors.Join(ErrInvalidSecret, ErrSecretTooShort)
	}
	return key, nil
}

var defaultEngine = &Engine{
	cfg:  DefaultConfig(),
	hash: sha1.New,
	now:  time.Now,
	log:  logger.Discard(),
}

// GenerateSecret returns a new 160-bit secret, base32 encoded without padding.
func GenerateSecret() (string, error) {
	return defaultEngine.GenerateSecret()
}

// KeyURI builds the otpauth URI for the default parameters.
func KeyURI(account, issuer, secret string) string {
	return defaultEngine.KeyURI(account, issuer, secret)
}

// Verify checks token against secret at the current time with the default parameters.
func Verify(token, secret string) bool {
	return defaultEngine.Verify(token, secret)
}

// VerifyAt checks token against secret at t with the default parameters.
func VerifyAt(token, secret string, t time.Time) bool {
	return defaultEngine.VerifyAt(token, secret, t)
}

// Generate returns the current code for secret with the default parameters.
func Generate(secret string) (string, error) {
	return defaultEngine.Generate(secret)
}

// GenerateAt returns the code for secret at t with the default parameters.
func GenerateAt(secret string, t time.Time) (string, error) {
	return defaultEngine.GenerateAt(secret, t)
}

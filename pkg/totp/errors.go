package totp

import "errors"

var (
	ErrFailedToGenerateSecret        = errors.New("failed to generate TOTP secret")
	ErrInvalidSecret                 = errors.New("invalid TOTP secret")
	ErrSecretTooShort                = errors.New("TOTP secret is shorter than 80 bits")
	ErrMissingAccountName            = errors.New("missing account name")
	ErrMissingIssuer                 = errors.New("missing issuer")
	ErrInvalidTime                   = errors.New("time precedes the Unix epoch")
	ErrInvalidConfig                 = errors.New("invalid TOTP configuration")
	ErrUnsupportedAlgorithm          = errors.New("unsupported HMAC algorithm")
	ErrInvalidDigits                 = errors.New("digits must be between 6 and 8")
	ErrInvalidPeriod                 = errors.New("period must be a positive number of seconds")
	ErrFailedToSealSecret            = errors.New("failed to seal TOTP secret")
	ErrFailedToOpenSecret            = errors.New("failed to open sealed TOTP secret")
	ErrSealedSecretTooShort          = errors.New("sealed secret too short")
	ErrFailedToGenerateEncryptionKey = errors.New("failed to generate encryption key")
	ErrInvalidEncryptionKey          = errors.New("invalid encryption key")
	ErrEncryptionKeyNotSet           = errors.New("TOTP encryption key not set")
	ErrInvalidRecoveryCodeCount      = errors.New("invalid recovery code count, must be greater than 0")
	ErrFailedToGenerateRecoveryCode  = errors.New("failed to generate recovery code")
)

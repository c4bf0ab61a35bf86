// Package totp implements the second-factor core: RFC 4226 HOTP, RFC 6238
// TOTP verification with a one-step drift window, secret provisioning and the
// otpauth:// enrollment URI understood by Google Authenticator, 1Password,
// Authy and similar apps.
//
// Persisting secrets, throttling attempts, rendering QR codes and the HTTP
// handlers that drive enrollment and login live outside this package.
//
// # Architecture
//
//   - hotp.go:     HOTP and the shared dynamic-truncation routine.
//
//   - totp.go:     Engine (time to counter mapping, Verify/Match, Generate,
//     GenerateSecret) and package-level shortcuts bound to the default
//     parameters.
//
//   - uri.go:      KeyURI and the validating ProvisioningURI.
//
//   - config.go:   Config with RFC 6238 defaults (6 digits, 30 s, SHA1),
//     env tags and LoadConfig on top of pkg/config.
//
//   - seal.go:     AES-256-GCM sealing of secrets at rest with an
//     HKDF-derived key.
//
//   - recovery.go: single-use recovery codes and their hashes.
//
// Secrets are base32 text produced and consumed by pkg/base32.
//
// # Usage
//
// Enrollment:
//
//	secret, err := totp.GenerateSecret()
//	if err != nil {
//		return err // no secure randomness, abort enrollment
//	}
//	uri := totp.KeyURI("jane@example.com", "Quote Garage", secret)
//	// render uri as a QR code, store secret (optionally via totp.SealSecret)
//
// Login:
//
//	if !totp.Verify(form.Code, storedSecret) {
//		return ErrWrongCode
//	}
//
// Custom parameters:
//
//	engine, err := totp.New(
//		totp.WithConfig(totp.Config{Digits: 8, Algorithm: totp.SHA256}),
//		totp.WithLogger(log),
//	)
//
// # Verification semantics
//
// Verify accepts the codes for counters C-1, C and C+1 where
// C = floor(unix / period). Nothing about the input is ever reported as an
// error: a token of the wrong length, a non-numeric token or a garbled secret
// all simply fail to match, so the login path looks the same whatever went
// wrong. Secrets are decoded leniently (see pkg/base32). Use ValidateSecret or
// ProvisioningURI to reject malformed secrets up front.
//
// A valid code can be accepted more than once inside its window. Match returns
// the counter that matched so a caller can remember the last accepted counter
// per account and refuse anything not newer.
//
// # Error Handling
//
// Fallible operations return package sentinels, often joined with the cause
// via errors.Join; test with errors.Is against ErrFailedToGenerateSecret,
// ErrInvalidSecret, ErrInvalidConfig, ErrFailedToOpenSecret and so on.
//
// # See Also
//
//   - RFC 4226: HMAC-Based One-Time Password Algorithm
//   - RFC 6238: Time-Based One-Time Password Algorithm
//   - https://github.com/google/google-authenticator/wiki/Key-Uri-Format
package totp

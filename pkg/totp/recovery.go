package totp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"github.com/shopquote/authkit/pkg/base32"
)

const (
	recoveryCodeBytes = 10 // 80 bits, 16 base32 characters
	recoveryGroupSize = 4
)

// GenerateRecoveryCodes creates count single-use backup codes formatted as
// XXXX-XXXX-XXXX-XXXX in the base32 alphabet.
func GenerateRecoveryCodes(count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidRecoveryCodeCount
	}

	codes := make([]string, count)
	raw := make([]byte, recoveryCodeBytes)
	for i := range count {
		if _, err := rand.Read(raw); err != nil {
			return nil, errors.Join(ErrFailedToGenerateRecoveryCode, err)
		}
		codes[i] = groupRecoveryCode(base32.Encode(raw))
	}
	return codes, nil
}

func groupRecoveryCode(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i += recoveryGroupSize {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(s[i:min(i+recoveryGroupSize, len(s))])
	}
	return sb.String()
}

// NormalizeRecoveryCode upper-cases code and strips dashes and whitespace so
// that "abcd efgh-ijkl-mnop" and "ABCD-EFGH-IJKL-MNOP" compare equal.
func NormalizeRecoveryCode(code string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, code)
}

// HashRecoveryCode returns the hex SHA-256 of the normalized code, for storage.
func HashRecoveryCode(code string) string {
	sum := sha256.Sum256([]byte(NormalizeRecoveryCode(code)))
	return hex.EncodeToString(sum[:])
}

// VerifyRecoveryCode compares code against a stored hash in constant time.
func VerifyRecoveryCode(code, hashedCode string) bool {
	return subtle.ConstantTimeCompare([]byte(HashRecoveryCode(code)), []byte(hashedCode)) == 1
}

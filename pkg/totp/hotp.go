package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"hash"
	"strconv"
	"strings"
)

var pow10 = [...]uint32{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000}

// HOTP implements RFC 4226 with HMAC-SHA1 and 6 digits, the parameters every
// authenticator app uses by default.
func HOTP(secret []byte, counter uint64) string {
	return hotp(sha1.New, secret, counter, DefaultDigits)
}

func hotp(h func() hash.Hash, secret []byte, counter uint64, digits int) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(h, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: the low nibble of the last byte selects a 4-byte
	// window; the top bit is cleared to get a non-negative 31-bit value.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
	code %= pow10[digits]

	s := strconv.FormatUint(uint64(code), 10)
	if len(s) < digits {
		s = strings.Repeat("0", digits-len(s)) + s
	}
	return s
}

package totp_test

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"testing"

	"github.com/shopquote/authkit/pkg/base32"
	"github.com/shopquote/authkit/pkg/totp"

	cotp "github.com/creachadair/otp"
	pqotp "github.com/pquerna/otp"
	pqhotp "github.com/pquerna/otp/hotp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rfc4226Secret = []byte("12345678901234567890")

func TestHOTP_RFC4226Vectors(t *testing.T) {
	t.Parallel()
	// RFC 4226 Appendix D.
	want := []string{
		"755224",
		"287082",
		"359152",
		"969429",
		"338314",
		"254676",
		"287922",
		"162583",
		"399871",
		"520489",
	}
	for counter, code := range want {
		assert.Equal(t, code, totp.HOTP(rfc4226Secret, uint64(counter)), "counter %d", counter)
	}
}

func TestHOTP_AlwaysSixDigits(t *testing.T) {
	t.Parallel()
	key := make([]byte, 20)
	_, err := rand.Read(key)
	require.NoError(t, err)

	for counter := range uint64(2000) {
		code := totp.HOTP(key, counter)
		require.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}

func TestHOTP_EmptyKey(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		code := totp.HOTP(nil, 0)
		assert.Len(t, code, 6)
		assert.Equal(t, code, totp.HOTP([]byte{}, 0))
	})
}

func TestHOTP_LargeCounter(t *testing.T) {
	t.Parallel()
	code := totp.HOTP(rfc4226Secret, ^uint64(0))
	assert.Regexp(t, `^[0-9]{6}$`, code)

	want, err := pqhotp.GenerateCodeCustom(base32.Encode(rfc4226Secret), ^uint64(0), pqhotp.ValidateOpts{
		Digits:    pqotp.DigitsSix,
		Algorithm: pqotp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	assert.Equal(t, want, code)
}

func TestEngineHOTP_MatchesOtherImplementations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		alg     totp.Algorithm
		digits  int
		newHash func() hash.Hash
		pqAlg   pqotp.Algorithm
		pqDig   pqotp.Digits
	}{
		{name: "SHA1 6 digits", alg: totp.SHA1, digits: 6, newHash: sha1.New, pqAlg: pqotp.AlgorithmSHA1, pqDig: pqotp.DigitsSix},
		{name: "SHA1 8 digits", alg: totp.SHA1, digits: 8, newHash: sha1.New, pqAlg: pqotp.AlgorithmSHA1, pqDig: pqotp.DigitsEight},
		{name: "SHA256 6 digits", alg: totp.SHA256, digits: 6, newHash: sha256.New, pqAlg: pqotp.AlgorithmSHA256, pqDig: pqotp.DigitsSix},
		{name: "SHA512 8 digits", alg: totp.SHA512, digits: 8, newHash: sha512.New, pqAlg: pqotp.AlgorithmSHA512, pqDig: pqotp.DigitsEight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := totp.MustNew(totp.WithConfig(totp.Config{Digits: tt.digits, Algorithm: tt.alg}))

			key := make([]byte, 32)
			_, err := rand.Read(key)
			require.NoError(t, err)

			other := cotp.Config{Key: string(key), Hash: tt.newHash, Digits: tt.digits}
			for _, counter := range []uint64{0, 1, 7, 59, 1 << 20, 1<<32 + 3, 1<<63 + 11} {
				got := engine.HOTP(key, counter)
				require.Len(t, got, tt.digits)
				assert.Equal(t, other.HOTP(counter), got, "creachadair/otp, counter %d", counter)

				pq, err := pqhotp.GenerateCodeCustom(base32.Encode(key), counter, pqhotp.ValidateOpts{
					Digits:    tt.pqDig,
					Algorithm: tt.pqAlg,
				})
				require.NoError(t, err)
				assert.Equal(t, pq, got, "pquerna/otp, counter %d", counter)
			}
		})
	}
}

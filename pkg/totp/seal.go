package totp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// EncryptionKeySize is the length of the master key accepted by SealSecret.
const EncryptionKeySize = 32

var sealInfo = []byte("authkit totp secret v1")

// SealSecret encrypts a base32 secret for storage with AES-256-GCM. The AES
// key is derived from the master key with HKDF-SHA256, the random nonce is
// prepended to the ciphertext and the result is base64 encoded.
func SealSecret(secret string, key []byte) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", errors.Join(ErrFailedToSealSecret, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrFailedToSealSecret, err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(secret), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenSecret reverses SealSecret.
func OpenSecret(sealed string, key []byte) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}

	n := aead.NonceSize()
	if len(data) < n+aead.Overhead() {
		return "", errors.Join(ErrFailedToOpenSecret, ErrSealedSecretTooShort)
	}

	plain, err := aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", errors.Join(ErrFailedToOpenSecret, err)
	}
	return string(plain), nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != EncryptionKeySize {
		return nil, ErrInvalidEncryptionKey
	}

	derived := make([]byte, EncryptionKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, sealInfo), derived); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// GenerateEncryptionKey returns a new random master key.
func GenerateEncryptionKey() ([]byte, error) {
	key := make([]byte, EncryptionKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrFailedToGenerateEncryptionKey, err)
	}
	return key, nil
}

// GenerateEncodedEncryptionKey returns a new master key in the base64 form
// expected by TOTP_ENCRYPTION_KEY.
func GenerateEncodedEncryptionKey() (string, error) {
	key, err := GenerateEncryptionKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// EncryptionKeyBytes decodes Config.EncryptionKey.
func (c Config) EncryptionKeyBytes() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, ErrEncryptionKeyNotSet
	}
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidEncryptionKey, err)
	}
	if len(key) != EncryptionKeySize {
		return nil, ErrInvalidEncryptionKey
	}
	return key, nil
}

package base32

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Alphabet is the RFC 4648 base32 alphabet.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

const invalid = 0xff

// decodeMap maps an upper-case ASCII byte to its 5-bit value or invalid.
var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = invalid
	}
	for i := range len(Alphabet) {
		m[Alphabet[i]] = byte(i)
	}
	return m
}()

// EncodedLen returns the length of the unpadded encoding of n bytes.
func EncodedLen(n int) int {
	return (n*8 + 4) / 5
}

// Encode returns the unpadded base32 encoding of src.
func Encode(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(EncodedLen(len(src)))

	var buf uint32
	bits := 0
	for _, b := range src {
		buf = buf<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(Alphabet[(buf>>bits)&0x1f])
		}
	}
	// Left-align the 1-4 leftover bits into one final symbol.
	if bits > 0 {
		sb.WriteByte(Alphabet[(buf<<(5-bits))&0x1f])
	}

	return sb.String()
}

// Decode returns the bytes represented by s. It never fails: characters
// outside the alphabet are skipped and an incomplete trailing byte is dropped.
func Decode(s string) []byte {
	out, _ := decode(s, false)
	return out
}

// DecodeStrict is Decode without the leniency: the first character that is
// not in the alphabet, not whitespace and not '=' yields ErrInvalidCharacter.
func DecodeStrict(s string) ([]byte, error) {
	return decode(s, true)
}

func decode(s string, strict bool) ([]byte, error) {
	out := make([]byte, 0, len(s)*5/8)

	var buf uint32
	bits := 0
	for i, r := range s {
		if r == '=' || unicode.IsSpace(r) {
			continue
		}
		// Only ASCII letters are folded; 'ı' or 'ſ' must not turn into 'I' or 'S'.
		v := byte(invalid)
		if r < 0x80 {
			c := byte(r)
			if 'a' <= c && c <= 'z' {
				c &^= 0x20
			}
			v = decodeMap[c]
		}
		if v == invalid {
			if strict {
				return nil, errors.Join(ErrInvalidCharacter, fmt.Errorf("character %q at offset %d", r, i))
			}
			continue
		}

		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
		}
	}

	return out, nil
}

package base32

import "errors"

// ErrInvalidCharacter is returned by DecodeStrict for input outside the RFC 4648 alphabet.
var ErrInvalidCharacter = errors.New("invalid base32 character")

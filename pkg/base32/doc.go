// Package base32 implements the RFC 4648 base32 alphabet in the form used by
// authenticator apps for shared secrets.
//
// Encode never emits '=' padding. Decode is deliberately forgiving: ASCII letters
// are upper-cased, padding and whitespace are stripped and any character outside
// the alphabet is skipped, so a secret pasted from an e-mail or a PDF still
// decodes to the bytes it was meant to carry. Trailing bits that do not fill a
// whole byte are dropped.
//
// DecodeStrict applies the same normalization but reports the first character
// outside the alphabet instead of skipping it. Use it where garbled input has
// to be rejected, for example when a user types a secret by hand during
// enrollment.
//
// # Usage
//
//	import "github.com/shopquote/authkit/pkg/base32"
//
//	s := base32.Encode([]byte("Hello!\xde\xad\xbe\xef")) // "JBSWY3DPEHPK3PXP"
//	b := base32.Decode("jbsw y3dp ehpk 3pxp")            // same bytes
//
//	if _, err := base32.DecodeStrict("JBSW-Y3DP"); errors.Is(err, base32.ErrInvalidCharacter) {
//		// reject
//	}
package base32

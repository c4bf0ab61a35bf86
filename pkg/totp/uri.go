package totp

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopquote/authkit/pkg/base32"

	"golang.org/x/text/unicode/norm"
)

// KeyURI builds the otpauth URI an authenticator app imports:
//
//	otpauth://totp/<issuer>:<account>?secret=<secret>&issuer=<issuer>
//
// Issuer and account are NFC-normalized and percent-encoded as URI
// components; the secret is inserted verbatim. algorithm, digits and period
// are appended only when they differ from the defaults, so default engines
// produce exactly the form above.
func (e *Engine) KeyURI(account, issuer, secret string) string {
	issuer = escapeComponent(norm.NFC.String(issuer))
	account = escapeComponent(norm.NFC.String(account))

	var sb strings.Builder
	sb.WriteString("otpauth://totp/")
	sb.WriteString(issuer)
	sb.WriteByte(':')
	sb.WriteString(account)
	sb.WriteString("?secret=")
	sb.WriteString(secret)
	sb.WriteString("&issuer=")
	sb.WriteString(issuer)

	if e.cfg.Algorithm != DefaultAlgorithm {
		sb.WriteString("&algorithm=")
		sb.WriteString(string(e.cfg.Algorithm))
	}
	if e.cfg.Digits != DefaultDigits {
		sb.WriteString("&digits=")
		sb.WriteString(strconv.Itoa(e.cfg.Digits))
	}
	if e.cfg.Period != DefaultPeriod {
		sb.WriteString("&period=")
		sb.WriteString(strconv.Itoa(e.cfg.Period))
	}

	return sb.String()
}

// ProvisioningURI is KeyURI with input checks for enrollment flows: account
// and issuer must be non-blank and secret must pass ValidateSecret. An empty
// issuer falls back to Config.Issuer. The secret is written in canonical form
// (upper case, no spaces or padding).
func (e *Engine) ProvisioningURI(account, issuer, secret string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", ErrMissingAccountName
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = e.cfg.Issuer
	}
	if strings.TrimSpace(issuer) == "" {
		return "", ErrMissingIssuer
	}
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return e.KeyURI(account, issuer, base32.Encode(key)), nil
}

// escapeComponent percent-encodes everything but unreserved characters and
// writes spaces as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

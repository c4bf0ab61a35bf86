package totp_test

import (
	"testing"

	"github.com/shopquote/authkit/pkg/totp"

	"github.com/creachadair/otp/otpauth"
	pqotp "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyURI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		account string
		issuer  string
		secret  string
		want    string
	}{
		{
			name:    "Basic",
			account: "jane",
			issuer:  "QuoteGarage",
			secret:  testSecret,
			want:    "otpauth://totp/QuoteGarage:jane?secret=JBSWY3DPEHPK3PXP&issuer=QuoteGarage",
		},
		{
			name:    "Spaces and at sign",
			account: "jane@example.com",
			issuer:  "Quote Garage",
			secret:  testSecret,
			want:    "otpauth://totp/Quote%20Garage:jane%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=Quote%20Garage",
		},
		{
			name:    "Reserved characters",
			account: "bob+fleet@x.io",
			issuer:  "Tom & Jerry's Auto",
			secret:  testSecret,
			want:    "otpauth://totp/Tom%20%26%20Jerry%27s%20Auto:bob%2Bfleet%40x.io?secret=JBSWY3DPEHPK3PXP&issuer=Tom%20%26%20Jerry%27s%20Auto",
		},
		{
			name:    "Colon and slash in issuer",
			account: "a/b",
			issuer:  "Shop: North",
			secret:  testSecret,
			want:    "otpauth://totp/Shop%3A%20North:a%2Fb?secret=JBSWY3DPEHPK3PXP&issuer=Shop%3A%20North",
		},
		{
			name:    "Non-ASCII is NFC normalized",
			account: "jose\u0301",
			issuer:  "Cafe\u0301 Motors",
			secret:  testSecret,
			want:    "otpauth://totp/Caf%C3%A9%20Motors:jos%C3%A9?secret=JBSWY3DPEHPK3PXP&issuer=Caf%C3%A9%20Motors",
		},
		{
			name:    "Secret inserted verbatim",
			account: "jane",
			issuer:  "QuoteGarage",
			secret:  "jbsw y3dp",
			want:    "otpauth://totp/QuoteGarage:jane?secret=jbsw y3dp&issuer=QuoteGarage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, totp.KeyURI(tt.account, tt.issuer, tt.secret))
		})
	}
}

func TestKeyURI_GeneratedSecret(t *testing.T) {
	t.Parallel()
	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	uri := totp.KeyURI("jane@example.com", "Quote Garage", secret)
	assert.Contains(t, uri, "secret="+secret)
	assert.Contains(t, uri, "issuer=Quote%20Garage")
}

func TestKeyURI_ParsedByAuthenticatorLibraries(t *testing.T) {
	t.Parallel()
	const (
		account = "bob+fleet@x.io"
		issuer  = "Tom & Jerry's Auto"
	)

	t.Run("Default parameters", func(t *testing.T) {
		t.Parallel()
		uri := totp.KeyURI(account, issuer, testSecret)

		key, err := pqotp.NewKeyFromURL(uri)
		require.NoError(t, err)
		assert.Equal(t, "totp", key.Type())
		assert.Equal(t, issuer, key.Issuer())
		assert.Equal(t, account, key.AccountName())
		assert.Equal(t, testSecret, key.Secret())
		assert.Equal(t, uint64(30), key.Period())

		u, err := otpauth.ParseURL(uri)
		require.NoError(t, err)
		assert.Equal(t, "totp", u.Type)
		assert.Equal(t, issuer, u.Issuer)
		assert.Equal(t, account, u.Account)
		assert.Equal(t, testSecret, u.RawSecret)
		assert.Equal(t, "SHA1", u.Algorithm)
		assert.Equal(t, 6, u.Digits)
		assert.Equal(t, 30, u.Period)
	})

	t.Run("Custom parameters", func(t *testing.T) {
		t.Parallel()
		engine := totp.MustNew(totp.WithConfig(totp.Config{Digits: 8, Period: 60, Algorithm: "sha256"}))
		uri := engine.KeyURI(account, issuer, testSecret)
		assert.Contains(t, uri, "&algorithm=SHA256&digits=8&period=60")

		u, err := otpauth.ParseURL(uri)
		require.NoError(t, err)
		assert.Equal(t, "SHA256", u.Algorithm)
		assert.Equal(t, 8, u.Digits)
		assert.Equal(t, 60, u.Period)

		key, err := pqotp.NewKeyFromURL(uri)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), key.Period())
		assert.Equal(t, pqotp.AlgorithmSHA256, key.Algorithm())
	})
}

func TestProvisioningURI(t *testing.T) {
	t.Parallel()
	engine := totp.MustNew()
	withIssuer := totp.MustNew(totp.WithConfig(totp.Config{Issuer: "Quote Garage"}))

	tests := []struct {
		name    string
		engine  *totp.Engine
		account string
		issuer  string
		secret  string
		want    string
		wantErr error
	}{
		{
			name:    "Canonical secret",
			engine:  engine,
			account: "jane",
			issuer:  "Acme",
			secret:  "jbsw y3dp ehpk 3pxp",
			want:    "otpauth://totp/Acme:jane?secret=JBSWY3DPEHPK3PXP&issuer=Acme",
		},
		{
			name:    "Configured issuer",
			engine:  withIssuer,
			account: "jane",
			secret:  testSecret,
			want:    "otpauth://totp/Quote%20Garage:jane?secret=JBSWY3DPEHPK3PXP&issuer=Quote%20Garage",
		},
		{name: "Missing account", engine: engine, account: " ", issuer: "Acme", secret: testSecret, wantErr: totp.ErrMissingAccountName},
		{name: "Missing issuer", engine: engine, account: "jane", issuer: "", secret: testSecret, wantErr: totp.ErrMissingIssuer},
		{name: "Garbled secret", engine: engine, account: "jane", issuer: "Acme", secret: "JBSW-Y3DP-EHPK", wantErr: totp.ErrInvalidSecret},
		{name: "Short secret", engine: engine, account: "jane", issuer: "Acme", secret: "JBSWY3DP", wantErr: totp.ErrSecretTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.engine.ProvisioningURI(tt.account, tt.issuer, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

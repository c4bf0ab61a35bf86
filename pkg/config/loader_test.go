package config_test

import (
	"os"
	"testing"

	"github.com/shopquote/authkit/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineConfig struct {
	Issuer     string   `env:"AUTHKIT_TEST_ISSUER" envDefault:"Authkit"`
	Digits     int      `env:"AUTHKIT_TEST_DIGITS" envDefault:"6"`
	Algorithms []string `env:"AUTHKIT_TEST_ALGORITHMS" envSeparator:","`
	Quoted     string   `env:"AUTHKIT_TEST_QUOTED"`
}

type requiredConfig struct {
	Required string `env:"AUTHKIT_TEST_REQUIRED,required"`
}

func unsetTestEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AUTHKIT_TEST_ISSUER",
		"AUTHKIT_TEST_DIGITS",
		"AUTHKIT_TEST_ALGORITHMS",
		"AUTHKIT_TEST_QUOTED",
		"AUTHKIT_TEST_REQUIRED",
	} {
		require.NoError(t, os.Unsetenv(k))
	}
	config.ResetCache()
	t.Cleanup(config.ResetCache)
}

func TestLoad_Defaults(t *testing.T) {
	unsetTestEnv(t)

	var cfg engineConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "Authkit", cfg.Issuer)
	assert.Equal(t, 6, cfg.Digits)
	assert.Empty(t, cfg.Algorithms)
}

func TestLoad_FromEnvironment(t *testing.T) {
	unsetTestEnv(t)
	t.Setenv("AUTHKIT_TEST_ISSUER", "Brake Bros")
	t.Setenv("AUTHKIT_TEST_DIGITS", "8")

	var cfg engineConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "Brake Bros", cfg.Issuer)
	assert.Equal(t, 8, cfg.Digits)
}

func TestLoad_Cached(t *testing.T) {
	unsetTestEnv(t)
	t.Setenv("AUTHKIT_TEST_ISSUER", "first")

	var first engineConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("AUTHKIT_TEST_ISSUER", "second")

	var second engineConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Issuer, "cached value must be returned")

	var reloaded engineConfig
	require.NoError(t, config.Reload(&reloaded))
	assert.Equal(t, "second", reloaded.Issuer)

	var afterReload engineConfig
	require.NoError(t, config.Load(&afterReload))
	assert.Equal(t, "second", afterReload.Issuer)
}

func TestLoad_MissingRequired(t *testing.T) {
	unsetTestEnv(t)

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *engineConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.Reload(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	unsetTestEnv(t)
	t.Cleanup(func() {
		for _, k := range []string{
			"AUTHKIT_TEST_ISSUER",
			"AUTHKIT_TEST_DIGITS",
			"AUTHKIT_TEST_ALGORITHMS",
			"AUTHKIT_TEST_QUOTED",
			"AUTHKIT_TEST_REQUIRED",
		} {
			_ = os.Unsetenv(k)
		}
	})

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

	var cfg engineConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "Quote Garage", cfg.Issuer)
	assert.Equal(t, 7, cfg.Digits, "later files take precedence")
	assert.Equal(t, []string{"SHA1", "SHA256"}, cfg.Algorithms)
	assert.Equal(t, "quoted value", cfg.Quoted)

	var req requiredConfig
	require.NoError(t, config.Load(&req))
	assert.Equal(t, "present", req.Required)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/does-not-exist.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv("testdata/does-not-exist.env") })
}

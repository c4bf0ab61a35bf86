// Command otpctl provisions and checks TOTP secrets from the shell.
//
//	otpctl keygen                                  # TOTP_ENCRYPTION_KEY value
//	otpctl secret --account jane@example.com       # new secret and otpauth URI
//	otpctl code --secret JBSWY3DPEHPK3PXP          # current code
//	otpctl verify 123456                           # exit status 1 if rejected
//	otpctl conform -f vectors.yaml                 # run conformance vectors
//	otpctl recovery -n 10                          # recovery codes and hashes
//
// Configuration comes from the environment (or .env): TOTP_DIGITS,
// TOTP_PERIOD, TOTP_ALGORITHM, TOTP_ISSUER, TOTP_ENCRYPTION_KEY, TOTP_SECRET,
// APP_ENV and LOG_LEVEL.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/shopquote/authkit/pkg/config"
	"github.com/shopquote/authkit/pkg/logger"
	"github.com/shopquote/authkit/pkg/totp"
)

type cliConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
	Secret   string `env:"TOTP_SECRET"`
}

func main() {
	var cfg cliConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "otpctl: %v\n", err)
		os.Exit(2)
	}

	log := newLogger(cfg, os.Stderr)
	logger.SetAsDefault(log)

	totpCfg, err := totp.LoadConfig()
	if err != nil {
		log.Error("invalid TOTP configuration", logger.Error(err))
		os.Exit(2)
	}

	engine, err := totp.New(totp.WithConfig(totpCfg), totp.WithLogger(log))
	if err != nil {
		log.Error("failed to create TOTP engine", logger.Error(err))
		os.Exit(2)
	}

	a := &app{
		engine:     engine,
		cfg:        engine.Config(),
		log:        log,
		envSecret:  cfg.Secret,
		readPrompt: promptSecret,
		now:        time.Now,
	}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger tags every record logged with a command context with the
// subcommand name and, for verify --account, the account.
func newLogger(cfg cliConfig, w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, "otpctl"),
		logger.WithOutput(w),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextValue("command", commandKey{}),
		logger.WithContextExtractors(logger.UserIDExtractor),
	)
}

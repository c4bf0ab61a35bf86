package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopquote/authkit/pkg/logger"
	"github.com/shopquote/authkit/pkg/totp"
	"github.com/shopquote/authkit/pkg/vectors"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	errNoSecret     = errors.New("no secret: use --secret, TOTP_SECRET or run in a terminal")
	errCodeRejected = errors.New("code rejected")
	errVectorsFail  = errors.New("conformance vectors failed")
)

type commandKey struct{}

type app struct {
	engine     *totp.Engine
	cfg        totp.Config
	log        *slog.Logger
	envSecret  string
	readPrompt func() (string, error)
	now        func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "otpctl",
		Short:        "Provision and check TOTP second-factor secrets",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(context.WithValue(cmd.Context(), commandKey{}, cmd.Name()))
		},
	}
	root.AddCommand(
		a.keygenCmd(),
		a.secretCmd(),
		a.codeCmd(),
		a.verifyCmd(),
		a.conformCmd(),
		a.recoveryCmd(),
	)
	return root
}

func (a *app) keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a base64 key for TOTP_ENCRYPTION_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := totp.GenerateEncodedEncryptionKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

func (a *app) secretCmd() *cobra.Command {
	var account, issuer string
	var seal bool

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a new secret and its otpauth URI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := a.engine.GenerateSecret()
			if err != nil {
				return err
			}
			uri, err := a.engine.ProvisioningURI(account, issuer, secret)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "secret: %s\n", secret)
			fmt.Fprintf(out, "uri:    %s\n", uri)

			if seal {
				key, err := a.cfg.EncryptionKeyBytes()
				if err != nil {
					return err
				}
				sealed, err := totp.SealSecret(secret, key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "sealed: %s\n", sealed)
			}

			a.log.InfoContext(cmd.Context(), "secret provisioned", logger.Account(account), logger.Issuer(uriIssuer(issuer, a.cfg)))
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account label, e.g. an e-mail address (required)")
	cmd.Flags().StringVar(&issuer, "issuer", "", "issuer shown in the authenticator app (default TOTP_ISSUER)")
	cmd.Flags().BoolVar(&seal, "seal", false, "also print the secret sealed with TOTP_ENCRYPTION_KEY")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func (a *app) codeCmd() *cobra.Command {
	var secret string
	var at int64

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print the code for the current (or --at) time step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.resolveSecret(secret)
			if err != nil {
				return err
			}
			code, err := a.engine.GenerateAt(s, a.when(cmd, at))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "base32 secret (default TOTP_SECRET or prompt)")
	cmd.Flags().Int64Var(&at, "at", 0, "unix time to evaluate instead of now")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var secret, account string
	var at int64

	cmd := &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Check a code against the previous, current and next time step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.resolveSecret(secret)
			if err != nil {
				return err
			}
			ctx := logger.ContextWithUserID(cmd.Context(), nonEmpty(account))
			counter, ok := a.engine.MatchContext(ctx, args[0], s, a.when(cmd, at))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errCodeRejected
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid (counter %d)\n", counter)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "base32 secret (default TOTP_SECRET or prompt)")
	cmd.Flags().Int64Var(&at, "at", 0, "unix time to evaluate instead of now")
	cmd.Flags().StringVar(&account, "account", "", "account the code belongs to, for the log")
	return cmd
}

func (a *app) conformCmd() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "conform",
		Short: "Run HOTP/TOTP conformance vectors (RFC 4226 and RFC 6238 by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var suites []*vectors.Suite
			if len(files) == 0 {
				builtin, err := vectors.Builtin()
				if err != nil {
					return err
				}
				suites = builtin
			}
			for _, f := range files {
				s, err := vectors.LoadFile(f)
				if err != nil {
					return err
				}
				suites = append(suites, s)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			failed, total := 0, 0
			for _, s := range suites {
				for _, r := range s.Run(totp.WithLogger(a.log)) {
					total++
					status := "ok"
					if !r.Passed() {
						status = "FAIL"
						failed++
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, s.Name, r.Case.Name, r.Got)
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				a.log.WarnContext(cmd.Context(), "conformance failures",
					logger.Group("vectors", slog.Int("failed", failed), slog.Int("total", total)))
				return fmt.Errorf("%w: %d", errVectorsFail, failed)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "YAML vector file (repeatable)")
	return cmd
}

func (a *app) recoveryCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Generate recovery codes and the hashes to store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes, err := totp.GenerateRecoveryCodes(n)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range codes {
				fmt.Fprintf(tw, "%s\t%s\n", c, totp.HashRecoveryCode(c))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of codes")
	return cmd
}

func (a *app) resolveSecret(flag string) (string, error) {
	if s := strings.TrimSpace(flag); s != "" {
		return s, nil
	}
	if a.envSecret != "" {
		return a.envSecret, nil
	}
	if a.readPrompt != nil {
		return a.readPrompt()
	}
	return "", errNoSecret
}

// when returns --at as a time when the flag was given, else now.
func (a *app) when(cmd *cobra.Command, at int64) time.Time {
	if cmd.Flags().Changed("at") {
		return time.Unix(at, 0)
	}
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func promptSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoSecret
	}
	fmt.Fprint(os.Stderr, "Secret: ")
	defer fmt.Fprintln(os.Stderr)

	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", errors.Join(errNoSecret, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func uriIssuer(flag string, cfg totp.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Issuer
}

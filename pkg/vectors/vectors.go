package vectors

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopquote/authkit/pkg/base32"
	"github.com/shopquote/authkit/pkg/totp"

	"gopkg.in/yaml.v3"
)

//go:embed rfc4226.yaml rfc6238.yaml
var builtin embed.FS

// Kind selects the algorithm a case exercises.
type Kind string

const (
	KindHOTP Kind = "hotp"
	KindTOTP Kind = "totp"
)

// Case is a single expected code.
type Case struct {
	Name         string         `yaml:"name"`
	Kind         Kind           `yaml:"kind"`
	SecretASCII  string         `yaml:"secret_ascii,omitempty"`
	SecretBase32 string         `yaml:"secret_base32,omitempty"`
	Algorithm    totp.Algorithm `yaml:"algorithm,omitempty"`
	Digits       int            `yaml:"digits,omitempty"`
	Period       int            `yaml:"period,omitempty"`
	Counter      uint64         `yaml:"counter,omitempty"`
	Time         int64          `yaml:"time,omitempty"`
	Expected     string         `yaml:"expected"`
}

// Suite is a named list of cases.
type Suite struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// Secret returns the case secret in base32 form.
func (c Case) Secret() string {
	if c.SecretBase32 != "" {
		return c.SecretBase32
	}
	return base32.Encode([]byte(c.SecretASCII))
}

// Config returns the engine parameters for the case.
func (c Case) Config() totp.Config {
	return totp.Config{
		Digits:    c.Digits,
		Period:    c.Period,
		Algorithm: c.Algorithm,
	}.WithDefaults()
}

func (c Case) validate() error {
	switch {
	case c.Kind != KindHOTP && c.Kind != KindTOTP:
		return fmt.Errorf("case %q: unknown kind %q", c.Name, c.Kind)
	case (c.SecretASCII == "") == (c.SecretBase32 == ""):
		return fmt.Errorf("case %q: exactly one of secret_ascii and secret_base32 is required", c.Name)
	case c.Expected == "":
		return fmt.Errorf("case %q: expected code is required", c.Name)
	}
	if err := c.Config().Validate(); err != nil {
		return fmt.Errorf("case %q: %w", c.Name, err)
	}
	return nil
}

// Parse decodes and validates a YAML suite. Unknown fields are rejected.
func Parse(data []byte) (*Suite, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Suite
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Join(ErrInvalidSuite, err)
	}
	if len(s.Cases) == 0 {
		return nil, errors.Join(ErrInvalidSuite, errors.New("suite has no cases"))
	}
	for _, c := range s.Cases {
		if err := c.validate(); err != nil {
			return nil, errors.Join(ErrInvalidSuite, err)
		}
	}
	return &s, nil
}

// LoadFile reads and parses a suite from disk.
func LoadFile(name string) (*Suite, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	return Parse(data)
}

// Builtin returns the RFC 4226 and RFC 6238 suites.
func Builtin() ([]*Suite, error) {
	entries, err := builtin.ReadDir(".")
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}

	suites := make([]*Suite, 0, len(entries))
	for _, e := range entries {
		data, err := builtin.ReadFile(e.Name())
		if err != nil {
			return nil, errors.Join(ErrFailedToLoad, err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// Result is the outcome of one case.
type Result struct {
	Case Case
	Got  string
	Err  error
}

// Passed reports whether the case produced the expected code.
func (r Result) Passed() bool { return r.Err == nil }

// Run evaluates every case. opts are applied to each engine before the case
// parameters, so they can supply a logger or clock but not override digits,
// period or algorithm.
func (s *Suite) Run(opts ...totp.Option) []Result {
	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		results = append(results, run(c, opts))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed() {
			out = append(out, r)
		}
	}
	return out
}

func run(c Case, opts []totp.Option) Result {
	res := Result{Case: c}

	engine, err := totp.New(append(opts[:len(opts):len(opts)], totp.WithConfig(c.Config()))...)
	if err != nil {
		res.Err = err
		return res
	}

	switch c.Kind {
	case KindHOTP:
		res.Got = engine.HOTP(base32.Decode(c.Secret()), c.Counter)
	case KindTOTP:
		at := time.Unix(c.Time, 0)
		if res.Got, err = engine.GenerateAt(c.Secret(), at); err != nil {
			res.Err = err
			return res
		}
		if !engine.VerifyAt(c.Expected, c.Secret(), at) {
			res.Err = ErrNotVerified
		}
	}

	if res.Got != c.Expected {
		res.Err = errors.Join(ErrUnexpectedCode, fmt.Errorf("got %s, want %s", res.Got, c.Expected))
	}
	return res
}

// Package config loads cfakit settings from YAML and validates them against
// an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cfakit/internal/returns"
)

//go:embed schema.cue
var schemaSource string

// Config holds solver, display and logging settings.
type Config struct {
	Solver  SolverConfig  `yaml:"solver" json:"solver"`
	Display DisplayConfig `yaml:"display" json:"display"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// SolverConfig tunes the IRR iteration.
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance" json:"tolerance"`
	MaxIterations int     `yaml:"max_iterations" json:"max_iterations"`
	InitialGuess  float64 `yaml:"initial_guess" json:"initial_guess"`
}

// DisplayConfig controls the dual decimal/percentage rendering.
type DisplayConfig struct {
	DecimalPlaces int32 `yaml:"decimal_places" json:"decimal_places"`
	PercentPlaces int32 `yaml:"percent_places" json:"percent_places"`
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level    string `yaml:"level" json:"level"`
	Encoding string `yaml:"encoding" json:"encoding"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			Tolerance:     returns.DefaultTolerance,
			MaxIterations: returns.DefaultMaxIterations,
			InitialGuess:  returns.DefaultGuess,
		},
		Display: DisplayConfig{
			DecimalPlaces: 4,
			PercentPlaces: 2,
		},
		Log: LogConfig{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

// SolverSettings converts the solver section into a returns.Solver.
func (c Config) SolverSettings() returns.Solver {
	return returns.Solver{
		Tolerance:     c.Solver.Tolerance,
		MaxIterations: c.Solver.MaxIterations,
		Guess:         c.Solver.InitialGuess,
	}
}

// Error reports a configuration problem. Field is the dotted path of the
// offending setting when known.
type Error struct {
	Path    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads the YAML file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Path: path, Message: "reading config", Err: err}
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
			return Config{}, ce
		}
		return Config{}, &Error{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &Error{Message: fmt.Sprintf("decoding YAML: %v", err), Err: err}
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded CUE schema.
func Validate(cfg Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.Encode(cfg)
	if err := v.Err(); err != nil {
		return formatCUEError(err)
	}

	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError keeps the first CUE error and its field path.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Message: err.Error(), Err: err}
	}

	first := errs[0]
	path := first.Path()
	if len(path) == 0 {
		return &Error{Message: first.Error(), Err: err}
	}
	format, args := first.Msg()
	return &Error{
		Field:   strings.Join(path, "."),
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

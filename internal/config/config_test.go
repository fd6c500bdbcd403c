package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cfakit/internal/returns"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfakit.yaml")
	err := os.WriteFile(path, []byte(`
solver:
  tolerance: 1.0e-10
  max_iterations: 200
display:
  decimal_places: 6
log:
  level: debug
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1e-10, cfg.Solver.Tolerance)
	assert.Equal(t, 200, cfg.Solver.MaxIterations)
	assert.Equal(t, returns.DefaultGuess, cfg.Solver.InitialGuess)
	assert.Equal(t, int32(6), cfg.Display.DecimalPlaces)
	assert.Equal(t, int32(2), cfg.Display.PercentPlaces)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("solver:\n  tolerence: 0.001\n"))
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), "tolerence")
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"negative tolerance", "solver:\n  tolerance: -1\n", "tolerance"},
		{"zero iterations", "solver:\n  max_iterations: 0\n", "max_iterations"},
		{"guess at total loss", "solver:\n  initial_guess: -1\n", "initial_guess"},
		{"too many places", "display:\n  decimal_places: 40\n", "decimal_places"},
		{"unknown level", "log:\n  level: chatty\n", "level"},
		{"unknown encoding", "log:\n  encoding: xml\n", "encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			require.Error(t, err)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.True(t, os.IsNotExist(ce.Err))
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), path))
}

func TestSolverSettings(t *testing.T) {
	cfg := Default()
	cfg.Solver.MaxIterations = 7

	s := cfg.SolverSettings()
	assert.Equal(t, returns.DefaultTolerance, s.Tolerance)
	assert.Equal(t, 7, s.MaxIterations)
	assert.Equal(t, returns.DefaultGuess, s.Guess)
}

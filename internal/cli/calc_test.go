package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCalcCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"mean", []string{"mean", "0.1,0.2,-0.05"}, "Arithmetic Mean Return: 0.0833 or 8.33%\n"},
		{"geomean", []string{"geomean", "0.10,0.20,-0.05"}, "Geometric Mean Return: 0.0784 or 7.84%\n"},
		{"irr", []string{"irr", "--", "-100,110"}, "IRR: 0.1000 or 10.00%\n"},
		{"annualize", []string{"annualize", "0.5", "2"}, "Annualized Return: 0.2247 or 22.47%\n"},
		{"ccr", []string{"ccr", "1000", "1100"}, "Continuously Compounded Return: 0.0953 or 9.53%\n"},
		{"annuity ordinary", []string{"annuity", "-n", "10", "-r", "0", "-p", "100"}, "Present Value of Annuity: 1000.0000 or 100000.00%\n"},
		{"annuity due", []string{"annuity", "--periods", "10", "--rate", "0.05", "--payment", "100", "--due"}, "Present Value of Annuity: 810.7822 or 81078.22%\n"},
		{"annuity timing flag", []string{"annuity", "--periods", "10", "--rate", "0.05", "--payment", "100", "--timing", "due"}, "Present Value of Annuity: 810.7822 or 81078.22%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalcJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "annualize", "0.5", "2")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Operation string  `json:"operation"`
			Label     string  `json:"label"`
			Value     float64 `json:"value"`
			Display   string  `json:"display"`
		} `json:"data"`
		TraceID string `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "annualized_return", resp.Data.Operation)
	assert.Equal(t, "Annualized Return", resp.Data.Label)
	assert.InDelta(t, 0.2247, resp.Data.Value, 1e-4)
	assert.Equal(t, "Annualized Return: 0.2247 or 22.47%", resp.Data.Display)

	_, err = uuid.Parse(resp.TraceID)
	assert.NoError(t, err)
}

func TestCalcFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
		msg  string
	}{
		{"malformed", []string{"mean", "0.1,abc"}, ErrCodeInvalidInput, `value 2: "abc" is not a number`},
		{"domain", []string{"ccr", "--", "1000", "-50"}, ErrCodeDomain, "ending value must be positive"},
		{"geomean domain", []string{"geomean", "--", "-1.5"}, ErrCodeDomain, "below -100%"},
		{"no convergence", []string{"irr", "100"}, ErrCodeNonConvergence, "at least two cash flows are required"},
		{"bad periods", []string{"annuity", "-n", "0", "-r", "0.05", "-p", "100"}, ErrCodeInvalidInput, "not a positive whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
			assert.Contains(t, out, tt.msg)
		})
	}
}

func TestCalcFailureJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "irr", "--", "-100,-50")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNonConvergence, resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
	assert.NotEmpty(t, resp.TraceID)
}

func TestCalcArgumentCount(t *testing.T) {
	_, _, err := execute(t, "annualize", "0.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s), received 1")
}

func TestAnnuityRequiredFlags(t *testing.T) {
	_, _, err := execute(t, "annuity", "--periods", "10", "--rate", "0.05")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment")
}

func TestCalcWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfakit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  max_iterations: 1
display:
  decimal_places: 6
  percent_places: 3
`), 0o644))

	out, _, err := execute(t, "--config", path, "irr", "--", "-100,39,59,55,20")
	require.Error(t, err)
	assert.Contains(t, out, "failed to converge after 1 iterations")

	out, _, err = execute(t, "--config", path, "ccr", "1000", "1100")
	require.NoError(t, err)
	assert.Equal(t, "Continuously Compounded Return: 0.095310 or 9.531%\n", out)
}

func TestCalcInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfakit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver:\n  tolerance: -1\n"), 0o644))

	out, _, err := execute(t, "--config", path, "mean", "0.1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeConfig+"]")
	assert.Contains(t, out, "tolerance")
}

func TestCalcInvalidLogLevel(t *testing.T) {
	out, _, err := execute(t, "--log-level", "loud", "mean", "0.1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeLogger+"]")
}

func TestCalcVerbose(t *testing.T) {
	out, errOut, err := execute(t, "-v", "mean", "0.02,0.04")
	require.NoError(t, err)

	assert.Equal(t, "Arithmetic Mean Return: 0.0300 or 3.00%\n", out)
	assert.Contains(t, errOut, "Evaluating arithmetic_mean with 1 input(s)")
	assert.Contains(t, errOut, "evaluated")
	assert.Contains(t, errOut, "trace_id")
}

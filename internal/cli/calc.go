package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/cfakit/internal/dispatch"
	"github.com/roach88/cfakit/internal/returns"
)

// NewMeanCommand creates the mean command.
func NewMeanCommand(rootOpts *RootOptions) *cobra.Command {
	return newCalcCommand(rootOpts, dispatch.OpArithmeticMean,
		"mean <returns>",
		"Arithmetic mean of periodic returns",
		`Arithmetic mean of comma-separated periodic returns.

Example:
  cfakit mean 0.10,0.20,-0.05`)
}

// NewGeoMeanCommand creates the geomean command.
func NewGeoMeanCommand(rootOpts *RootOptions) *cobra.Command {
	return newCalcCommand(rootOpts, dispatch.OpGeometricMean,
		"geomean <returns>",
		"Geometric mean (compounded) return",
		`Geometric mean of comma-separated periodic returns.

Fails when any period lost more than 100%.

Example:
  cfakit geomean 0.10,0.20,-0.05`)
}

// NewIRRCommand creates the irr command.
func NewIRRCommand(rootOpts *RootOptions) *cobra.Command {
	return newCalcCommand(rootOpts, dispatch.OpIRR,
		"irr <cashflows>",
		"Internal rate of return of a cash-flow series",
		`Internal rate of return of comma-separated cash flows, one per period
starting at period 0.

The solver starts from solver.initial_guess and gives up after
solver.max_iterations steps; it never guesses a value.

Example:
  cfakit irr -- -100,39,59,55,20`)
}

// NewAnnualizeCommand creates the annualize command.
func NewAnnualizeCommand(rootOpts *RootOptions) *cobra.Command {
	return newCalcCommand(rootOpts, dispatch.OpAnnualizedReturn,
		"annualize <total-return> <years>",
		"Annualize a holding-period return",
		`Convert a total return earned over a number of years into a
compound annual rate.

Example:
  cfakit annualize 0.5 2`)
}

// NewCCRCommand creates the ccr command.
func NewCCRCommand(rootOpts *RootOptions) *cobra.Command {
	return newCalcCommand(rootOpts, dispatch.OpContinuousReturn,
		"ccr <start-value> <end-value>",
		"Continuously compounded return",
		`Continuously compounded return ln(end/start) between two positive values.

Example:
  cfakit ccr 1000 1100`)
}

func newCalcCommand(rootOpts *RootOptions, op dispatch.Operation, use, short, long string) *cobra.Command {
	h, _ := dispatch.HandlerFor(op)

	return &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          cobra.ExactArgs(len(h.Prompts)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(rootOpts, op, args, cmd)
		},
	}
}

func runCalc(opts *RootOptions, op dispatch.Operation, args []string, cmd *cobra.Command) error {
	e, err := newEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	e.formatter.VerboseLog("Evaluating %s with %d input(s)", op, len(args))

	res, err := e.dispatcher.Evaluate(op, args)
	if err != nil {
		return outputCalcError(e.formatter, op, err)
	}
	return e.formatter.Success(res)
}

// outputCalcError reports a failed calculation. Solver diagnostics are
// attached as details.
func outputCalcError(formatter *OutputFormatter, op dispatch.Operation, err error) error {
	var details interface{}
	message := dispatch.Describe(op, err)

	var re *returns.Error
	if errors.As(err, &re) {
		message = re.Message
		if len(re.Details) > 0 {
			details = re.Details
		}
	}

	_ = formatter.Error(errorCode(err), message, details)
	// Calculation failures are input errors, not command errors (exit code 1)
	return WrapExitError(ExitFailure, message, err)
}

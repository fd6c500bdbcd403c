package dispatch

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/roach88/cfakit/internal/config"
	"github.com/roach88/cfakit/internal/returns"
)

// Result is one rendered calculation.
type Result struct {
	Op      Operation `json:"operation"`
	Label   string    `json:"label"`
	Value   float64   `json:"value"`
	Display string    `json:"display"`
}

// Percent returns the value scaled to percent.
func (r Result) Percent() float64 {
	return r.Value * 100
}

// String returns the dual decimal/percentage rendering.
func (r Result) String() string {
	return r.Display
}

// Format renders value as "<label>: <value> or <value*100>%" with the
// given number of decimal places for each part.
func Format(label string, value float64, places, percentPlaces int32) string {
	d := decimal.NewFromFloat(value)
	return fmt.Sprintf("%s: %s or %s%%",
		label,
		d.StringFixed(places),
		d.Shift(2).StringFixed(percentPlaces))
}

// Dispatcher evaluates operations with one solver and display setting.
type Dispatcher struct {
	solver  returns.Solver
	display config.DisplayConfig
	logger  *zap.Logger
}

// New creates a Dispatcher from cfg. A nil logger discards log output.
func New(cfg config.Config, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		solver:  cfg.SolverSettings(),
		display: cfg.Display,
		logger:  logger,
	}
}

// Evaluate parses args in prompt order and runs op.
func (d *Dispatcher) Evaluate(op Operation, args []string) (Result, error) {
	h, ok := HandlerFor(op)
	if !ok {
		return Result{}, fmt.Errorf("unknown operation %d", int(op))
	}
	if len(args) != len(h.Prompts) {
		return Result{}, returns.NewInvalidInputError(op.String(),
			"expected %d input(s), got %d", len(h.Prompts), len(args))
	}

	d.logger.Debug("evaluating", zap.Stringer("op", op), zap.Strings("args", args))

	value, err := h.compute(d.solver, args)
	if err != nil {
		d.logger.Info("calculation failed",
			zap.Stringer("op", op),
			zap.String("kind", string(returns.KindOf(err))),
			zap.Error(err))
		return Result{}, err
	}

	d.logger.Debug("evaluated", zap.Stringer("op", op), zap.Float64("value", value))

	return Result{
		Op:      op,
		Label:   h.Label,
		Value:   value,
		Display: Format(h.Label, value, d.display.DecimalPlaces, d.display.PercentPlaces),
	}, nil
}

// Describe turns an evaluation error into the message shown to the user.
func Describe(op Operation, err error) string {
	var e *returns.Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("Error: %v", err)
	}

	switch e.Kind {
	case returns.KindInvalidInput:
		return fmt.Sprintf("Invalid input: %s.", e.Message)
	case returns.KindEmptyInput:
		return "Invalid input: enter at least one number."
	case returns.KindNonConvergence:
		if op == OpIRR {
			return fmt.Sprintf("IRR could not be calculated: %s", e.Message)
		}
		return fmt.Sprintf("Calculation did not converge: %s", e.Message)
	default:
		return fmt.Sprintf("Error: %s.", e.Message)
	}
}

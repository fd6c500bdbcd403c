package dispatch

import (
	"fmt"
	"strings"

	"github.com/roach88/cfakit/internal/numparse"
	"github.com/roach88/cfakit/internal/returns"
)

// Operation identifies one engine routine.
type Operation int

const (
	OpArithmeticMean Operation = iota + 1
	OpGeometricMean
	OpIRR
	OpAnnualizedReturn
	OpContinuousReturn
	OpPVAnnuity
)

// Operations lists every operation in menu order.
var Operations = []Operation{
	OpArithmeticMean,
	OpGeometricMean,
	OpIRR,
	OpAnnualizedReturn,
	OpContinuousReturn,
	OpPVAnnuity,
}

var opNames = map[Operation]string{
	OpArithmeticMean:   "arithmetic_mean",
	OpGeometricMean:    "geometric_mean",
	OpIRR:              "irr",
	OpAnnualizedReturn: "annualized_return",
	OpContinuousReturn: "continuous_return",
	OpPVAnnuity:        "pv_annuity",
}

// String returns the snake_case operation name.
func (o Operation) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// MarshalText encodes the operation by name.
func (o Operation) MarshalText() ([]byte, error) {
	if _, ok := opNames[o]; !ok {
		return nil, fmt.Errorf("unknown operation %d", int(o))
	}
	return []byte(o.String()), nil
}

// Prompt is one question asked before an operation runs.
type Prompt struct {
	Name string // argument name used by the CLI
	Text string // interactive prompt
}

// Handler binds an operation to its prompts and engine call.
type Handler struct {
	Op      Operation
	Key     string // menu key
	Title   string // menu entry
	Label   string // result label
	Prompts []Prompt

	compute func(s returns.Solver, args []string) (float64, error)
}

var (
	promptReturns = Prompt{Name: "returns", Text: "Enter periodic returns (comma-separated): "}
	promptFlows   = Prompt{Name: "cashflows", Text: "Enter cash flows (comma-separated): "}
)

var handlers = []Handler{
	{
		Op:      OpArithmeticMean,
		Key:     "1",
		Title:   "Arithmetic Mean Return",
		Label:   "Arithmetic Mean Return",
		Prompts: []Prompt{promptReturns},
		compute: func(_ returns.Solver, args []string) (float64, error) {
			series, err := numparse.Series(args[0])
			if err != nil {
				return 0, err
			}
			return returns.ArithmeticMean(series)
		},
	},
	{
		Op:      OpGeometricMean,
		Key:     "2",
		Title:   "Geometric Mean Return",
		Label:   "Geometric Mean Return",
		Prompts: []Prompt{promptReturns},
		compute: func(_ returns.Solver, args []string) (float64, error) {
			series, err := numparse.Series(args[0])
			if err != nil {
				return 0, err
			}
			return returns.GeometricMean(series)
		},
	},
	{
		Op:      OpIRR,
		Key:     "3",
		Title:   "IRR Calculator",
		Label:   "IRR",
		Prompts: []Prompt{promptFlows},
		compute: func(s returns.Solver, args []string) (float64, error) {
			flows, err := numparse.Series(args[0])
			if err != nil {
				return 0, err
			}
			return s.IRR(flows)
		},
	},
	{
		Op:    OpAnnualizedReturn,
		Key:   "4",
		Title: "Annualized Return",
		Label: "Annualized Return",
		Prompts: []Prompt{
			{Name: "total", Text: "Total return (decimal, e.g., 0.5 for 50%): "},
			{Name: "years", Text: "Time period (years): "},
		},
		compute: func(_ returns.Solver, args []string) (float64, error) {
			total, err := numparse.Scalar(args[0])
			if err != nil {
				return 0, err
			}
			years, err := numparse.Scalar(args[1])
			if err != nil {
				return 0, err
			}
			return returns.AnnualizedReturn(total, years)
		},
	},
	{
		Op:    OpContinuousReturn,
		Key:   "5",
		Title: "Continuously Compounded Return",
		Label: "Continuously Compounded Return",
		Prompts: []Prompt{
			{Name: "start", Text: "Initial investment (e.g., 1000): "},
			{Name: "end", Text: "Ending value: "},
		},
		compute: func(_ returns.Solver, args []string) (float64, error) {
			start, err := numparse.Scalar(args[0])
			if err != nil {
				return 0, err
			}
			end, err := numparse.Scalar(args[1])
			if err != nil {
				return 0, err
			}
			return returns.ContinuousCompoundedReturn(start, end)
		},
	},
	{
		Op:    OpPVAnnuity,
		Key:   "6",
		Title: "Present Value of Annuity",
		Label: "Present Value of Annuity",
		Prompts: []Prompt{
			{Name: "periods", Text: "Number of periods: "},
			{Name: "rate", Text: "Periodic rate (decimal, e.g., 0.05 for 5%): "},
			{Name: "payment", Text: "Payment per period: "},
			{Name: "timing", Text: "Timing (ordinary/due): "},
		},
		compute: func(_ returns.Solver, args []string) (float64, error) {
			var (
				p   returns.AnnuityParams
				err error
			)
			if p.Periods, err = numparse.Count(args[0]); err != nil {
				return 0, err
			}
			if p.Rate, err = numparse.Scalar(args[1]); err != nil {
				return 0, err
			}
			if p.Payment, err = numparse.Scalar(args[2]); err != nil {
				return 0, err
			}
			if p.Timing, err = numparse.Timing(args[3]); err != nil {
				return 0, err
			}
			return returns.PVAnnuity(p)
		},
	},
}

// Handlers returns the handler table in menu order.
func Handlers() []Handler {
	out := make([]Handler, len(handlers))
	copy(out, handlers)
	return out
}

// HandlerFor returns the handler of op.
func HandlerFor(op Operation) (Handler, bool) {
	for _, h := range handlers {
		if h.Op == op {
			return h, true
		}
	}
	return Handler{}, false
}

// HandlerForKey returns the handler behind a menu key.
func HandlerForKey(key string) (Handler, bool) {
	key = strings.TrimSpace(key)
	for _, h := range handlers {
		if h.Key == key {
			return h, true
		}
	}
	return Handler{}, false
}

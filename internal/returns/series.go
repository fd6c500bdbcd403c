package returns

import (
	"fmt"
	"math"
	"strings"
)

// Operation names used in Error.Op.
const (
	opArithmeticMean = "arithmetic_mean"
	opGeometricMean  = "geometric_mean"
	opIRR            = "irr"
	opAnnualized     = "annualized_return"
	opContinuous     = "continuous_return"
	opPVAnnuity      = "pv_annuity"
)

// ReturnSeries holds one fractional return per period.
type ReturnSeries []float64

// CashFlowSeries holds one cash flow per period. Index i is discounted by (1+r)^i.
type CashFlowSeries []float64

// TimingMode says whether annuity payments fall at period end or period start.
type TimingMode int

const (
	// Ordinary annuities pay at the end of each period.
	Ordinary TimingMode = iota
	// Due annuities pay at the start of each period.
	Due
)

// String returns the lower-case mode name.
func (m TimingMode) String() string {
	switch m {
	case Ordinary:
		return "ordinary"
	case Due:
		return "due"
	default:
		return fmt.Sprintf("TimingMode(%d)", int(m))
	}
}

// ParseTimingMode accepts "ordinary"/"end" and "due"/"begin"/"start", case-insensitively.
func ParseTimingMode(s string) (TimingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ordinary", "end", "o":
		return Ordinary, nil
	case "due", "begin", "start", "d":
		return Due, nil
	}
	return Ordinary, NewInvalidInputError(opPVAnnuity, "unknown timing mode %q (want ordinary or due)", s)
}

// AnnuityParams describes a level annuity.
type AnnuityParams struct {
	Periods int
	Rate    float64
	Payment float64
	Timing  TimingMode
}

// checkFinite rejects NaN and infinite elements.
func checkFinite(op string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewInvalidInputError(op, "value %d is not a finite number", i+1)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

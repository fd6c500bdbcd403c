package returns

import (
	"fmt"
	"math"
)

// Solver defaults.
const (
	DefaultTolerance     = 1e-8
	DefaultMaxIterations = 50
	DefaultGuess         = 0.1
)

// Solver finds the internal rate of return of a cash-flow series with a
// secant iteration from a single starting guess. It never brackets or
// restarts: when the iteration does not settle it fails.
type Solver struct {
	// Tolerance is the absolute step size below which the iteration stops.
	Tolerance float64

	// MaxIterations bounds the number of secant updates.
	MaxIterations int

	// Guess is the starting rate.
	Guess float64
}

// DefaultSolver uses a 1e-8 tolerance, 50 iterations and a 10% guess.
var DefaultSolver = Solver{
	Tolerance:     DefaultTolerance,
	MaxIterations: DefaultMaxIterations,
	Guess:         DefaultGuess,
}

// IRR solves NPV(r) = 0 with DefaultSolver.
func IRR(flows CashFlowSeries) (float64, error) {
	return DefaultSolver.IRR(flows)
}

// NPV returns Σ flows[i] / (1+rate)^i.
func NPV(rate float64, flows CashFlowSeries) (float64, error) {
	if err := checkFinite("npv", flows); err != nil {
		return 0, err
	}
	if 1+rate <= 0 {
		return 0, NewDomainError("npv", "discount rate %g is at or below -100%%", rate)
	}
	v := npv(rate, flows)
	if !isFinite(v) {
		return 0, NewDomainError("npv", "present value overflows at rate %g", rate)
	}
	return v, nil
}

func npv(rate float64, flows CashFlowSeries) float64 {
	var sum float64
	for i, cf := range flows {
		sum += cf / math.Pow(1+rate, float64(i))
	}
	return sum
}

// IRR solves NPV(r) = 0 for flows.
//
// The derivative is never evaluated analytically: the first two points are
// the guess and a point displaced by 1e-4 relative plus 1e-4 absolute, after
// which each step follows the secant through the last two iterates.
func (s Solver) IRR(flows CashFlowSeries) (float64, error) {
	if s.Tolerance <= 0 || math.IsNaN(s.Tolerance) {
		return 0, NewInvalidInputError(opIRR, "solver tolerance must be positive")
	}
	if s.MaxIterations <= 0 {
		return 0, NewInvalidInputError(opIRR, "solver iteration limit must be positive")
	}
	if !isFinite(s.Guess) || s.Guess <= -1 {
		return 0, NewInvalidInputError(opIRR, "initial guess must be a finite rate above -100%%")
	}
	if len(flows) == 0 {
		return 0, NewEmptyInputError(opIRR)
	}
	if err := checkFinite(opIRR, flows); err != nil {
		return 0, err
	}
	if len(flows) < 2 {
		return 0, newNonConvergenceError("at least two cash flows are required", 0, s.Guess)
	}

	eval := func(r float64, itr int) (float64, error) {
		if 1+r <= 0 {
			return 0, newNonConvergenceError(
				fmt.Sprintf("rate estimate %g crossed -100%%, NPV is undefined", r), itr, r)
		}
		v := npv(r, flows)
		if !isFinite(v) {
			return 0, newNonConvergenceError(
				fmt.Sprintf("NPV is not finite at rate %g", r), itr, r)
		}
		return v, nil
	}

	p0 := s.Guess
	p1 := p0*(1+1e-4) + 1e-4
	if p0 < 0 {
		p1 = p0*(1+1e-4) - 1e-4
	}
	q0, err := eval(p0, 0)
	if err != nil {
		return 0, err
	}
	q1, err := eval(p1, 0)
	if err != nil {
		return 0, err
	}
	if math.Abs(q1) < math.Abs(q0) {
		p0, p1, q0, q1 = p1, p0, q1, q0
	}

	for itr := 1; itr <= s.MaxIterations; itr++ {
		if q1 == q0 {
			return 0, newNonConvergenceError(
				fmt.Sprintf("NPV is flat between %g and %g, no secant step possible", p0, p1), itr, p1)
		}

		var p float64
		if math.Abs(q1) > math.Abs(q0) {
			p = (-q0/q1*p1 + p0) / (1 - q0/q1)
		} else {
			p = (-q1/q0*p0 + p1) / (1 - q1/q0)
		}
		if !isFinite(p) {
			return 0, newNonConvergenceError("secant step is not finite", itr, p1)
		}
		if math.Abs(p-p1) <= s.Tolerance {
			if 1+p <= 0 {
				return 0, newNonConvergenceError(
					fmt.Sprintf("rate estimate %g crossed -100%%, NPV is undefined", p), itr, p)
			}
			return p, nil
		}

		p0, q0 = p1, q1
		p1 = p
		if q1, err = eval(p1, itr); err != nil {
			return 0, err
		}
	}

	return 0, newNonConvergenceError(
		fmt.Sprintf("failed to converge after %d iterations, value is %g", s.MaxIterations, p1),
		s.MaxIterations, p1)
}

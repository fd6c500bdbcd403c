// Package returns implements the return metrics engine.
//
// Every exported operation is a pure function of its arguments: it validates
// the input, evaluates a closed form (or, for IRR, a bounded secant
// iteration) and returns either a finite float64 or a *Error describing why
// no number could be produced.
//
// Operations never return NaN or an infinity. Callers distinguish failures
// with IsInvalidInput, IsEmptyInput, IsDomain and IsNonConvergence.
//
// Returns are fractions: 0.05 means +5%.
package returns

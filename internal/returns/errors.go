package returns

import (
	"errors"
	"fmt"
)

// Error is returned by every engine operation that cannot produce a value.
type Error struct {
	// Kind identifies the failure category.
	Kind ErrorKind

	// Op names the operation that failed, e.g. "irr".
	Op string

	// Message is a human-readable description.
	Message string

	// Details carries solver diagnostics such as iteration counts.
	Details map[string]string
}

// ErrorKind categorizes engine failures.
type ErrorKind string

const (
	// KindInvalidInput indicates malformed or out-of-range input shape.
	KindInvalidInput ErrorKind = "INVALID_INPUT"

	// KindEmptyInput indicates an empty series where one element is required.
	KindEmptyInput ErrorKind = "EMPTY_INPUT"

	// KindDomain indicates a mathematically undefined operation.
	KindDomain ErrorKind = "DOMAIN"

	// KindNonConvergence indicates the IRR solver gave up.
	KindNonConvergence ErrorKind = "NON_CONVERGENCE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsInvalidInput reports whether err is an invalid input error.
func IsInvalidInput(err error) bool { return KindOf(err) == KindInvalidInput }

// IsEmptyInput reports whether err is an empty input error.
func IsEmptyInput(err error) bool { return KindOf(err) == KindEmptyInput }

// IsDomain reports whether err is a domain error.
func IsDomain(err error) bool { return KindOf(err) == KindDomain }

// IsNonConvergence reports whether err is a solver non-convergence error.
func IsNonConvergence(err error) bool { return KindOf(err) == KindNonConvergence }

// NewInvalidInputError creates an Error of kind KindInvalidInput.
func NewInvalidInputError(op, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewEmptyInputError creates an Error of kind KindEmptyInput.
func NewEmptyInputError(op string) *Error {
	return &Error{Kind: KindEmptyInput, Op: op, Message: "at least one value is required"}
}

// NewDomainError creates an Error of kind KindDomain.
func NewDomainError(op, format string, args ...any) *Error {
	return &Error{Kind: KindDomain, Op: op, Message: fmt.Sprintf(format, args...)}
}

func newNonConvergenceError(message string, iterations int, last float64) *Error {
	return &Error{
		Kind:    KindNonConvergence,
		Op:      opIRR,
		Message: message,
		Details: map[string]string{
			"iterations": fmt.Sprintf("%d", iterations),
			"last_rate":  fmt.Sprintf("%g", last),
		},
	}
}

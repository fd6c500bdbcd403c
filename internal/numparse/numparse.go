// Package numparse turns typed text into the numeric inputs the return
// engine expects.
//
// Input is NFKC-normalised first so that full-width digits and the Unicode
// minus sign read the same as their ASCII forms. Failures are reported with
// the returns error taxonomy so callers handle parser and engine errors alike.
package numparse

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cfakit/internal/returns"
)

// Separator splits series input.
const Separator = ","

const op = "parse"

var replacer = strings.NewReplacer(
	"−", "-", // minus sign
	"–", "-", // en dash
	"_", "",
)

// normalize folds compatibility characters and trims surrounding space.
func normalize(s string) string {
	return strings.TrimSpace(replacer.Replace(norm.NFKC.String(s)))
}

// Series parses a comma-separated list of numbers. Blank input is an empty
// input error; a blank or non-numeric token is an invalid input error.
func Series(text string) ([]float64, error) {
	text = normalize(text)
	if text == "" {
		return nil, returns.NewEmptyInputError(op)
	}

	tokens := strings.Split(text, Separator)
	values := make([]float64, 0, len(tokens))
	for i, tok := range tokens {
		v, err := parseToken(tok)
		if err != nil {
			return nil, returns.NewInvalidInputError(op, "value %d: %s", i+1, err.Message)
		}
		values = append(values, v)
	}
	return values, nil
}

// Scalar parses a single number.
func Scalar(text string) (float64, error) {
	v, err := parseToken(normalize(text))
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Count parses a positive whole number, e.g. a number of periods.
// "10" and "10.0" are accepted; "10.5" and "0" are not.
func Count(text string) (int, error) {
	v, perr := parseToken(normalize(text))
	if perr != nil {
		return 0, perr
	}
	if v != math.Trunc(v) || v < 1 || v > math.MaxInt32 {
		return 0, returns.NewInvalidInputError(op, "%q is not a positive whole number", strings.TrimSpace(text))
	}
	return int(v), nil
}

// Timing parses an annuity timing mode.
func Timing(text string) (returns.TimingMode, error) {
	return returns.ParseTimingMode(normalize(text))
}

func parseToken(tok string) (float64, *returns.Error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, returns.NewInvalidInputError(op, "missing number")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, returns.NewInvalidInputError(op, "%q is not a number", tok)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, returns.NewInvalidInputError(op, "%q is not a finite number", tok)
	}
	return v, nil
}

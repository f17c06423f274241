package argmap

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern is the grammar accepted for float values: an optional sign,
// then NaN, Infinity, a decimal with optional exponent, or a hexadecimal
// significand with a binary exponent. Either numeric form may end in one of
// the type suffixes f, F, d or D. Digit separators and lower-case special
// values are not part of it.
var decimalPattern = regexp.MustCompile(
	`^[+-]?(?:NaN|Infinity|` +
		`(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?[fFdD]?|` +
		`0[xX](?:[0-9a-fA-F]+\.?[0-9a-fA-F]*|\.[0-9a-fA-F]+)[pP][+-]?[0-9]+[fFdD]?)$`)

// parseDecimal converts s to a 32-bit float. Leading and trailing control
// characters and spaces are ignored. Magnitudes beyond the float32 range
// round to ±Inf or zero instead of failing.
func parseDecimal(s string) (float32, error) {
	s = strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
	if !decimalPattern.MatchString(s) {
		return 0, strconv.ErrSyntax
	}

	sign := 1
	body := s
	switch body[0] {
	case '-':
		sign = -1
		body = body[1:]
	case '+':
		body = body[1:]
	}

	switch body {
	case "NaN":
		return float32(math.NaN()), nil
	case "Infinity":
		return float32(math.Inf(sign)), nil
	}

	// Both numeric forms end in a digit or '.', so a trailing letter here
	// is always the type suffix.
	switch s[len(s)-1] {
	case 'f', 'F', 'd', 'D':
		s = s[:len(s)-1]
	}

	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, unwrapNum(err)
	}
	return float32(f), nil
}

// Package argmap parses the agent's attach-time configuration string.
//
// The string is a comma-separated list of key=value tokens, for example
//
//	host=my.riemann.host,port=5556,dt=10
//
// Values of the keys port and dt are coerced to integers, load to a float,
// and every other key is kept as text. Parse never prints or exits; callers
// that own the process decide what to do with a returned error.
package argmap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	pairSeparator  = ","
	valueSeparator = "="
)

// Example is a complete, valid configuration string.
const Example = "host=my.riemann.host,port=5556,dt=10"

var (
	// ErrMalformedToken is wrapped by every SyntaxError.
	ErrMalformedToken = errors.New("malformed configuration token")
	// ErrMalformedValue is wrapped by every ValueError.
	ErrMalformedValue = errors.New("malformed configuration value")
)

// typed lists the keys with a fixed non-text type.
var typed = map[string]Kind{
	"port": KindInt,
	"dt":   KindInt,
	"load": KindFloat,
}

// KindOf returns the kind a key is coerced to.
func KindOf(key string) Kind {
	if k, ok := typed[key]; ok {
		return k
	}
	return KindText
}

// SyntaxError reports a token without a key/value separator.
type SyntaxError struct {
	Token string
	Index int // zero-based position of the token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("token %d %q: expected key=value", e.Index, e.Token)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedToken }

// ValueError reports a value that could not be coerced to its key's type.
type ValueError struct {
	Key   string
	Value string
	Kind  Kind
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s=%q: expected %s: %v", e.Key, e.Value, e.Kind, e.Err)
}

func (e *ValueError) Unwrap() []error { return []error{ErrMalformedValue, e.Err} }

// Parse converts raw into a Map. Empty input yields an empty Map.
//
// On error the returned Map is empty; no partial result is ever returned.
func Parse(raw string) (Map, error) {
	b := newBuilder()
	for i, token := range tokens(raw) {
		key, val, ok := strings.Cut(token, valueSeparator)
		if !ok {
			return Map{}, &SyntaxError{Token: token, Index: i}
		}
		v, err := coerce(key, val)
		if err != nil {
			return Map{}, err
		}
		b.set(key, v)
	}
	return b.freeze(), nil
}

// tokens splits raw on the pair separator. A single trailing separator
// does not produce an extra token.
func tokens(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, pairSeparator)
	if n := len(parts); n > 1 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

func coerce(key, val string) (Value, error) {
	switch kind := KindOf(key); kind {
	case KindInt:
		n, err := strconv.ParseInt(val, 10, 32)
		if err != nil {
			return Value{}, &ValueError{Key: key, Value: val, Kind: kind, Err: unwrapNum(err)}
		}
		return IntValue(int(n)), nil
	case KindFloat:
		f, err := parseDecimal(val)
		if err != nil {
			return Value{}, &ValueError{Key: key, Value: val, Kind: kind, Err: err}
		}
		return FloatValue(f), nil
	default:
		return TextValue(val), nil
	}
}

// unwrapNum drops the strconv function/input prefix, which ValueError
// already reports.
func unwrapNum(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}

// Usage returns the diagnostic printed when the configuration string cannot
// be parsed.
func Usage() string {
	return "profiler agent takes a list of comma-separated k=v pairs for " +
		"riemann.jvm-profiler/start-global!. The keys port and dt take integers, " +
		"load takes a decimal number, and all other keys are passed through as text. " +
		"For instance, --agent-args " + Example
}

// Package testutil holds helpers shared by the agent's tests.
package testutil

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
)

// Logger returns a debug-level logger that writes through t.Log, so its
// output only appears for failing or verbose runs.
func Logger(t testing.TB) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.ConsoleWriter{Out: tbWriter{t}, NoColor: true}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
}

// ParseArgs parses a configuration string and fails the test if it is
// malformed.
func ParseArgs(t testing.TB, raw string) argmap.Map {
	t.Helper()
	m, err := argmap.Parse(raw)
	require.NoError(t, err, "parse %q", raw)
	return m
}

type tbWriter struct {
	t testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

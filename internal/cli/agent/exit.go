package agent

import (
	"errors"
	"fmt"
	"io"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
)

// ExitError carries the status the process should exit with.
type ExitError struct {
	Code int
	Err  error
	// Reported means the diagnostic was already written.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Report writes err to w unless it was already reported.
func Report(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// isParseError reports whether err came from parsing the configuration string.
func isParseError(err error) bool {
	return errors.Is(err, argmap.ErrMalformedToken) || errors.Is(err, argmap.ErrMalformedValue)
}

// reportParseError writes the usage diagnostic for a malformed configuration
// string and returns the error to exit with.
func reportParseError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "%s\n(%v)\n", argmap.Usage(), err)
	return &ExitError{Code: 1, Err: err, Reported: true}
}

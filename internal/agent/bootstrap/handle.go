package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Instrumentation is the opaque handle the host supplies at attach time.
// The agent accepts it to satisfy the host's calling convention and does
// not pass it on to the engine.
type Instrumentation interface {
	PID() int32
}

// ProcessHandle identifies the process the agent was attached to.
// A nil *ProcessHandle reports PID 0 and no name.
type ProcessHandle struct {
	pid       int32
	name      string
	createdAt time.Time
}

// CurrentProcess returns a handle for the calling process, described by
// gopsutil.
func CurrentProcess(ctx context.Context) (*ProcessHandle, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect process %d: %w", os.Getpid(), err)
	}

	name, err := proc.NameWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read name of process %d: %w", proc.Pid, err)
	}

	h := &ProcessHandle{pid: proc.Pid, name: name}

	// Not every platform exposes a start time.
	if ms, err := proc.CreateTimeWithContext(ctx); err == nil {
		h.createdAt = time.UnixMilli(ms)
	}

	return h, nil
}

// PID returns the process ID.
func (h *ProcessHandle) PID() int32 {
	if h == nil {
		return 0
	}
	return h.pid
}

// Name returns the executable name.
func (h *ProcessHandle) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// CreatedAt returns when the process started, or the zero time when the
// platform does not report it.
func (h *ProcessHandle) CreatedAt() time.Time {
	if h == nil {
		return time.Time{}
	}
	return h.createdAt
}

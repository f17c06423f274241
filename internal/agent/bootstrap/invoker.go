// Package bootstrap starts the profiling engine from the agent's attach-time
// configuration string.
//
// The handshake is one-shot: the configuration string is parsed into an
// immutable argmap.Map, the engine's entry point is resolved by its
// well-known name, and the engine is initialized exactly once. Parse errors
// are returned before the engine is touched; engine errors are returned
// exactly as the engine produced them.
package bootstrap

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
)

// ErrAlreadyStarted is returned when the handshake is attempted twice.
var ErrAlreadyStarted = errors.New("profiler agent already started")

// Invoker performs the startup handshake with the engine.
type Invoker struct {
	registry   *Registry
	entryPoint string
	logger     zerolog.Logger
	metrics    *Metrics
	started    atomic.Bool
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithEntryPoint overrides the name resolved in the registry.
func WithEntryPoint(name string) Option {
	return func(i *Invoker) { i.entryPoint = name }
}

// WithMetrics records handshake outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(i *Invoker) { i.metrics = m }
}

// NewInvoker creates an invoker resolving engines from registry.
// A nil registry means DefaultRegistry.
func NewInvoker(registry *Registry, logger zerolog.Logger, opts ...Option) *Invoker {
	if registry == nil {
		registry = DefaultRegistry
	}

	i := &Invoker{
		registry:   registry,
		entryPoint: EntryPoint,
		logger:     logger.With().Str("component", "bootstrap").Logger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.metrics == nil {
		i.metrics = NewMetrics(i.logger)
	}
	return i
}

// Premain parses raw and starts the engine with the result.
//
// The returned error is an *argmap.SyntaxError or *argmap.ValueError when raw
// is malformed, in which case the engine is never called. inst is accepted
// from the host and not forwarded.
func (i *Invoker) Premain(ctx context.Context, raw string, inst Instrumentation) error {
	start := time.Now()

	cfg, err := argmap.Parse(raw)
	if err != nil {
		i.metrics.RecordAttempt(MetricResultParseFailure, time.Since(start), err)
		return err
	}

	return i.start(ctx, cfg, inst, start)
}

// Start initializes the engine with an already parsed configuration.
func (i *Invoker) Start(ctx context.Context, cfg argmap.Map, inst Instrumentation) error {
	return i.start(ctx, cfg, inst, time.Now())
}

func (i *Invoker) start(ctx context.Context, cfg argmap.Map, inst Instrumentation, began time.Time) error {
	if !i.started.CompareAndSwap(false, true) {
		i.metrics.RecordAttempt(MetricResultRejected, time.Since(began), ErrAlreadyStarted)
		return ErrAlreadyStarted
	}

	engine, err := i.registry.Resolve(i.entryPoint)
	if err != nil {
		i.metrics.RecordAttempt(MetricResultNotFound, time.Since(began), err)
		return err
	}

	event := i.logger.Debug().
		Str("entry_point", i.entryPoint).
		Strs("keys", cfg.Keys())
	if inst != nil {
		event = event.Int32("host_pid", inst.PID())
		if named, ok := inst.(interface{ Name() string }); ok {
			event = event.Str("host_name", named.Name())
		}
	}
	event.Msg("Starting profiler engine")

	if err := engine.Init(ctx, cfg); err != nil {
		i.metrics.RecordAttempt(MetricResultEngineFailure, time.Since(began), err)
		return err
	}

	i.metrics.RecordAttempt(MetricResultSuccess, time.Since(began), nil)
	return nil
}

// Started reports whether the handshake has been attempted.
func (i *Invoker) Started() bool {
	return i.started.Load()
}

// Metrics returns the invoker's outcome recorder.
func (i *Invoker) Metrics() *Metrics {
	return i.metrics
}

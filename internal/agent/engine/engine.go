// Package engine provides a reference profiler engine for the agent.
//
// The engine validates the configuration mapping handed to it by the
// bootstrap and records the resulting session. Sampling and reporting are
// performed by the Riemann profiler proper and are not part of this package.
package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
	"github.com/riemann/riemann-jvm-profiler/internal/agent/bootstrap"
)

var (
	// ErrAlreadyRunning is returned by Init when the engine was already started.
	ErrAlreadyRunning = errors.New("profiler engine already running")
	// ErrInvalidSettings is wrapped by validation failures.
	ErrInvalidSettings = errors.New("invalid profiler settings")
)

// Session describes a started engine.
type Session struct {
	ID        string
	Settings  Settings
	StartedAt time.Time
}

// Engine is the reference implementation of bootstrap.Initializer.
type Engine struct {
	logger zerolog.Logger

	// dial checks the Riemann address when CheckReachable is set.
	dial           func(ctx context.Context, network, addr string) (net.Conn, error)
	checkReachable bool

	mu      sync.Mutex
	session *Session
	config  argmap.Map
}

// Option configures an Engine.
type Option func(*Engine)

// WithReachabilityCheck makes Init fail when the Riemann server cannot be
// reached over TCP.
func WithReachabilityCheck(enabled bool) Option {
	return func(e *Engine) { e.checkReachable = enabled }
}

// New creates an engine.
func New(logger zerolog.Logger, opts ...Option) *Engine {
	var d net.Dialer
	e := &Engine{
		logger: logger.With().Str("component", "profiler_engine").Logger(),
		dial:   d.DialContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init implements bootstrap.Initializer.
func (e *Engine) Init(ctx context.Context, cfg argmap.Map) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrAlreadyRunning
	}

	settings, err := SettingsFrom(cfg)
	if err != nil {
		return err
	}

	if e.checkReachable {
		if err := e.checkServer(ctx, settings.Addr()); err != nil {
			return err
		}
	}

	for key, val := range settings.Extra {
		e.logger.Debug().Str("key", key).Str("value", val).Msg("Passing through unrecognized option")
	}

	e.session = &Session{
		ID:        uuid.New().String(),
		Settings:  settings,
		StartedAt: time.Now(),
	}
	e.config = cfg

	e.logger.Info().
		Str("session_id", e.session.ID).
		Str("riemann", settings.Addr()).
		Dur("dt", settings.DT).
		Float32("load", settings.Load).
		Str("prefix", settings.Prefix).
		Str("localhost", settings.LocalHost).
		Msg("Profiler engine started")

	return nil
}

// checkServer opens and closes one TCP connection to addr.
func (e *Engine) checkServer(ctx context.Context, addr string) error {
	conn, err := e.dial(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("riemann server %s unreachable: %w", addr, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			e.logger.Warn().Err(err).Str("riemann", addr).Msg("Failed to close connection to Riemann server")
		}
	}()

	e.logger.Debug().
		Str("riemann", addr).
		Str("local_addr", conn.LocalAddr().String()).
		Msg("Riemann server reachable")
	return nil
}

// Session returns the running session, or nil before Init succeeded.
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}
	s := *e.session
	return &s
}

// Config returns the mapping the engine was started with.
func (e *Engine) Config() argmap.Map {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Register binds e to the well-known entry point in reg.
func (e *Engine) Register(reg *bootstrap.Registry) error {
	return reg.Register(bootstrap.EntryPoint, e)
}

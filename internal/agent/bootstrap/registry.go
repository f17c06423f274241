package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
)

// EntryPoint is the well-known name of the engine's initialization entry
// point.
const EntryPoint = "riemann.jvm-profiler/start-global!"

var (
	// ErrEntryPointNotFound is returned when no engine is registered under a name.
	ErrEntryPointNotFound = errors.New("entry point not found")
	// ErrDuplicateEntryPoint is returned when a name is registered twice.
	ErrDuplicateEntryPoint = errors.New("entry point already registered")
)

// Initializer is the capability an engine provides to be started by the
// agent. Init receives the configuration mapping as its sole argument and
// may retain it.
type Initializer interface {
	Init(ctx context.Context, cfg argmap.Map) error
}

// InitializerFunc adapts a function to Initializer.
type InitializerFunc func(ctx context.Context, cfg argmap.Map) error

// Init calls f.
func (f InitializerFunc) Init(ctx context.Context, cfg argmap.Map) error {
	return f(ctx, cfg)
}

// Registry resolves entry points by name.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Initializer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Initializer)}
}

// Register binds engine to name.
func (r *Registry) Register(name string, engine Initializer) error {
	if engine == nil {
		return fmt.Errorf("register %q: nil initializer", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateEntryPoint)
	}
	r.entries[name] = engine
	return nil
}

// Resolve returns the initializer bound to name.
func (r *Registry) Resolve(name string) (Initializer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	engine, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("resolve %q: %w", name, ErrEntryPointNotFound)
	}
	return engine, nil
}

// Names returns the registered names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the process-wide registry engines bind themselves to.
var DefaultRegistry = NewRegistry()

// Register binds engine to name in DefaultRegistry.
func Register(name string, engine Initializer) error {
	return DefaultRegistry.Register(name, engine)
}

// Resolve looks name up in DefaultRegistry.
func Resolve(name string) (Initializer, error) {
	return DefaultRegistry.Resolve(name)
}

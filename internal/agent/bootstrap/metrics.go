package bootstrap

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MetricResult represents the outcome of a handshake attempt.
type MetricResult string

const (
	// MetricResultSuccess indicates the engine started.
	MetricResultSuccess MetricResult = "success"

	// MetricResultParseFailure indicates the configuration string was malformed.
	MetricResultParseFailure MetricResult = "parse_failure"

	// MetricResultNotFound indicates no engine was bound to the entry point.
	MetricResultNotFound MetricResult = "not_found"

	// MetricResultEngineFailure indicates the engine's Init returned an error.
	MetricResultEngineFailure MetricResult = "engine_failure"

	// MetricResultRejected indicates a repeated handshake.
	MetricResultRejected MetricResult = "rejected"
)

// Metrics tracks handshake attempts and logs each one as a structured event.
type Metrics struct {
	logger zerolog.Logger

	mu       sync.RWMutex
	total    map[MetricResult]int64
	duration time.Duration
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger zerolog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
		total:  make(map[MetricResult]int64),
	}
}

// RecordAttempt records a handshake attempt with its result and duration.
func (m *Metrics) RecordAttempt(result MetricResult, duration time.Duration, err error) {
	m.mu.Lock()
	m.total[result]++
	m.duration += duration
	m.mu.Unlock()

	// Parse failures log at debug only; the entry point prints their diagnostic.
	var event *zerolog.Event
	switch {
	case result == MetricResultParseFailure:
		event = m.logger.Debug().Err(err)
	case err != nil:
		event = m.logger.Warn().Err(err)
	default:
		event = m.logger.Info()
	}
	event.
		Str("metric", "profiler_agent_bootstrap_attempt").
		Str("result", string(result)).
		Float64("duration_seconds", duration.Seconds()).
		Msg("Bootstrap attempt recorded")
}

// Stats returns the current counters.
func (m *Metrics) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, n := range m.total {
		total += n
	}

	return Stats{
		TotalAttempts:        total,
		SuccessCount:         m.total[MetricResultSuccess],
		ParseFailureCount:    m.total[MetricResultParseFailure],
		NotFoundCount:        m.total[MetricResultNotFound],
		EngineFailureCount:   m.total[MetricResultEngineFailure],
		RejectedCount:        m.total[MetricResultRejected],
		TotalDurationSeconds: m.duration.Seconds(),
	}
}

// Stats contains aggregated handshake statistics.
type Stats struct {
	TotalAttempts        int64   `json:"total_attempts"`
	SuccessCount         int64   `json:"success_count"`
	ParseFailureCount    int64   `json:"parse_failure_count"`
	NotFoundCount        int64   `json:"not_found_count"`
	EngineFailureCount   int64   `json:"engine_failure_count"`
	RejectedCount        int64   `json:"rejected_count"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
}

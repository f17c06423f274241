package config

import (
	"github.com/riemann/riemann-jvm-profiler/internal/agent/bootstrap"
)

// DefaultAgentConfig returns the agent configuration used when no file or
// environment overrides are present.
func DefaultAgentConfig() *AgentConfig {
	return &AgentConfig{
		EntryPoint: bootstrap.EntryPoint,
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Package config loads the agent's own settings: where the attach-time
// configuration string comes from and how the agent logs. The string itself
// is interpreted by the argmap package, not here.
package config

// AgentConfig is the agent process configuration.
type AgentConfig struct {
	// Args is the raw attach-time configuration string, e.g.
	// "host=my.riemann.host,port=5556,dt=10".
	Args string `yaml:"args" env:"PROFILER_AGENT_ARGS"`

	// EntryPoint is the registry name of the engine to start.
	EntryPoint string `yaml:"entry_point" env:"PROFILER_AGENT_ENTRY_POINT"`

	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
}

// LoggingConfig configures the agent logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"PROFILER_AGENT_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PROFILER_AGENT_LOG_PRETTY"`
}

// EngineConfig configures the reference engine.
type EngineConfig struct {
	// CheckReachable makes the engine dial the Riemann server during Init.
	CheckReachable bool `yaml:"check_reachable" env:"PROFILER_AGENT_CHECK_REACHABLE"`
}

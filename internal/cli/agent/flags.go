package agent

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/riemann/riemann-jvm-profiler/internal/config"
)

// commonFlags are shared by every command that loads AgentConfig.
type commonFlags struct {
	configPath string
	agentArgs  string
	logLevel   string
	logPretty  bool
}

func (f *commonFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to agent config file (YAML)")
	fs.StringVar(&f.agentArgs, "agent-args", "", "Comma-separated k=v configuration string (overrides PROFILER_AGENT_ARGS)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	fs.BoolVar(&f.logPretty, "log-pretty", true, "Human-readable log output")
}

// load builds AgentConfig from defaults, file and environment, then applies
// the flags the user set explicitly.
func (f *commonFlags) load(cmd *cobra.Command) (*config.AgentConfig, error) {
	cfg, err := config.NewLayeredLoader().LoadAgentConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("agent-args") {
		cfg.Args = f.agentArgs
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if fs.Changed("log-pretty") {
		cfg.Logging.Pretty = f.logPretty
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package agent

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
)

// NewParseCmd creates the parse command, which prints the typed mapping a
// configuration string produces without starting anything.
func NewParseCmd() *cobra.Command {
	var (
		flags  commonFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "parse [CONFIG_STRING]",
		Short: "Show how a configuration string is interpreted",
		Long: `Parse a comma-separated k=v configuration string and print the typed result.

Without an argument the string is taken from --agent-args, PROFILER_AGENT_ARGS
or the --config file.

Examples:
  profiler-agent parse host=my.riemann.host,port=5556,dt=10
  profiler-agent parse port=5556,load=0.5 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			raw := cfg.Args
			if len(args) == 1 {
				raw = args[0]
			}

			m, err := argmap.Parse(raw)
			if err != nil {
				return reportParseError(cmd.ErrOrStderr(), err)
			}

			return writeMap(cmd.OutOrStdout(), m, format)
		},
	}

	flags.bind(cmd.Flags())
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format (text, yaml, json)")

	return cmd
}

func writeMap(w io.Writer, m argmap.Map, format string) error {
	switch format {
	case "text":
		var err error
		m.Each(func(key string, v argmap.Value) {
			if err == nil {
				_, err = fmt.Fprintf(w, "%s=%s (%s)\n", key, v, v.Kind())
			}
		})
		return err

	case "yaml":
		data, err := yaml.Marshal(m.AsMap())
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err

	case "json":
		data, err := json.MarshalIndent(m.AsMap(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	default:
		return fmt.Errorf("unsupported output format %q (expected text, yaml or json)", format)
	}
}

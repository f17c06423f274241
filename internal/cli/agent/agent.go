// Package agent implements the profiler-agent command line.
package agent

import (
	"github.com/spf13/cobra"
)

// RegisterCommands adds the agent subcommands to root.
func RegisterCommands(root *cobra.Command) {
	root.AddCommand(NewRunCmd())
	root.AddCommand(NewParseCmd())
}

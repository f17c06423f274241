// Package main provides the profiler-agent binary.
//
// profiler-agent parses the attach-time configuration string, starts the
// profiler engine and then runs the host program. It is the only place in
// the module that terminates the process.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/riemann/riemann-jvm-profiler/internal/cli/agent"
	"github.com/riemann/riemann-jvm-profiler/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "profiler-agent",
		Short:         "Riemann profiler agent - attach the profiler before a program starts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	agent.RegisterCommands(rootCmd)
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		agent.Report(os.Stderr, err)
		os.Exit(agent.ExitCode(err))
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(version.String())
		},
	}
}

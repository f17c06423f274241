package agent

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/bootstrap"
	"github.com/riemann/riemann-jvm-profiler/internal/agent/engine"
	"github.com/riemann/riemann-jvm-profiler/internal/logging"
)

// NewRunCmd creates the run command, which attaches the profiler and then
// starts the host program.
func NewRunCmd() *cobra.Command {
	var (
		flags          commonFlags
		entryPoint     string
		checkReachable bool
	)

	cmd := &cobra.Command{
		Use:   "run [flags] -- COMMAND [ARGS...]",
		Short: "Start the profiler, then run COMMAND",
		Long: `Start the profiler engine from a comma-separated k=v configuration string,
then run COMMAND as the host program.

The configuration string is read from --agent-args, PROFILER_AGENT_ARGS, or the
"args" key of the --config file, in that order of precedence. If it cannot be
parsed, a diagnostic is printed, the agent exits with status 1 and COMMAND is
never started. If the engine fails to start, its error is printed and the agent
exits with status 1.

Recognized keys:
  port, dt   integer
  load       decimal number
  (other)    passed to the engine as text

Examples:
  profiler-agent run --agent-args host=my.riemann.host,port=5556,dt=10 -- ./server
  PROFILER_AGENT_ARGS=host=riemann,load=0.05 profiler-agent run -- ./worker --queue jobs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("entry-point") {
				cfg.EntryPoint = entryPoint
			}
			if cmd.Flags().Changed("check-reachable") {
				cfg.Engine.CheckReachable = checkReachable
			}

			logger := logging.New(logging.Config{
				Level:  cfg.Logging.Level,
				Pretty: cfg.Logging.Pretty,
				Output: cmd.ErrOrStderr(),
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			registry := bootstrap.NewRegistry()
			eng := engine.New(logger, engine.WithReachabilityCheck(cfg.Engine.CheckReachable))
			if err := eng.Register(registry); err != nil {
				return err
			}

			handle, err := bootstrap.CurrentProcess(ctx)
			if err != nil {
				return err
			}

			invoker := bootstrap.NewInvoker(registry, logger, bootstrap.WithEntryPoint(cfg.EntryPoint))
			if err := invoker.Premain(ctx, cfg.Args, handle); err != nil {
				if isParseError(err) {
					return reportParseError(cmd.ErrOrStderr(), err)
				}
				return err
			}

			return runHost(ctx, cmd, args)
		},
	}

	flags.bind(cmd.Flags())
	cmd.Flags().StringVar(&entryPoint, "entry-point", bootstrap.EntryPoint, "Registry name of the engine to start")
	cmd.Flags().BoolVar(&checkReachable, "check-reachable", false, "Fail startup when the Riemann server cannot be reached")

	return cmd
}

// runHost runs the host program in the foreground and forwards its exit status.
func runHost(ctx context.Context, cmd *cobra.Command, args []string) error {
	// #nosec G204 -- running the operator's command is the purpose of run.
	host := exec.CommandContext(ctx, args[0], args[1:]...)
	host.Stdin = cmd.InOrStdin()
	host.Stdout = cmd.OutOrStdout()
	host.Stderr = cmd.ErrOrStderr()

	if err := host.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: hostExitCode(exitErr), Err: err, Reported: true}
		}
		return fmt.Errorf("failed to start %s: %w", args[0], err)
	}
	return nil
}

// hostExitCode maps the host's termination to the agent's exit status.
// A host killed by a signal exits with 128+signal, as a shell reports it.
func hostExitCode(exitErr *exec.ExitError) int {
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}

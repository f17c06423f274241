package agent

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
)

const helperEnv = "PROFILER_AGENT_TEST_HELPER"

// TestHelperProcess stands in for the host program started by run.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		t.Skip("helper process")
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	fmt.Fprintln(os.Stdout, "host started")
	if len(args) > 0 {
		switch args[0] {
		case "fail":
			os.Exit(3)
		case "kill":
			self, _ := os.FindProcess(os.Getpid())
			_ = self.Kill()
			time.Sleep(time.Minute)
		}
	}
	os.Exit(0)
}

func hostCommand(extra ...string) []string {
	return append([]string{os.Args[0], "-test.run=TestHelperProcess", "--"}, extra...)
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(helperEnv, "1")
	t.Setenv("PROFILER_AGENT_ARGS", "")

	root := &cobra.Command{Use: "profiler-agent", SilenceUsage: true, SilenceErrors: true}
	RegisterCommands(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRun_StartsHost(t *testing.T) {
	args := append([]string{"run", "--agent-args", "host=my.riemann.host,port=5556,dt=10", "--log-pretty=false", "--"}, hostCommand()...)
	stdout, stderr, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, stdout, "host started")
	assert.Contains(t, stderr, "Profiler engine started")
	assert.Equal(t, 0, ExitCode(err))
}

func TestRun_ArgsFromEnvironment(t *testing.T) {
	t.Setenv(helperEnv, "1")

	root := &cobra.Command{Use: "profiler-agent", SilenceUsage: true, SilenceErrors: true}
	RegisterCommands(root)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"run", "--log-pretty=false", "--"}, hostCommand()...))
	t.Setenv("PROFILER_AGENT_ARGS", "host=from-env,port=7000")

	require.NoError(t, root.Execute())
	assert.Contains(t, errOut.String(), "from-env:7000")
}

func TestRun_ForwardsHostExitCode(t *testing.T) {
	args := append([]string{"run", "--agent-args", "host=h", "--"}, hostCommand("fail")...)
	stdout, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Contains(t, stdout, "host started")
	assert.Equal(t, 3, ExitCode(err))
}

func TestRun_HostKilledBySignal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("signals are not delivered on windows")
	}

	args := append([]string{"run", "--agent-args", "host=h", "--"}, hostCommand("kill")...)
	_, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Equal(t, 128+int(syscall.SIGKILL), ExitCode(err))
}

func TestRun_ParseFailureStopsBeforeHost(t *testing.T) {
	tests := []struct {
		name      string
		agentArgs string
		wantErr   error
	}{
		{name: "malformed value", agentArgs: "port=abc", wantErr: argmap.ErrMalformedValue},
		{name: "malformed token", agentArgs: "portonly", wantErr: argmap.ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"run", "--agent-args", tt.agentArgs, "--"}, hostCommand()...)
			stdout, stderr, err := execute(t, args...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, ExitCode(err))
			assert.NotContains(t, stdout, "host started")
			assert.Equal(t, argmap.Usage()+"\n("+errors.Unwrap(err).Error()+")\n", stderr,
				"stderr holds only the usage diagnostic")

			var buf bytes.Buffer
			Report(&buf, err)
			assert.Empty(t, buf.String(), "diagnostic is written once")
		})
	}
}

func TestRun_EngineFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	agentArgs := fmt.Sprintf("host=127.0.0.1,port=%d", port)
	args := append([]string{"run", "--agent-args", agentArgs, "--check-reachable", "--"}, hostCommand()...)
	stdout, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.NotContains(t, stdout, "host started")

	var buf bytes.Buffer
	Report(&buf, err)
	assert.True(t, strings.HasPrefix(buf.String(), "Error: "))
}

func TestRun_UnknownEntryPoint(t *testing.T) {
	args := append([]string{"run", "--entry-point", "other/start", "--"}, hostCommand()...)
	stdout, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "other/start")
	assert.NotContains(t, stdout, "host started")
}

func TestRun_RequiresCommand(t *testing.T) {
	_, _, err := execute(t, "run", "--agent-args", "host=h")
	assert.Error(t, err)
}

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{format: "text", want: []string{"dt=10 (integer)", "host=my.host (text)", "load=0.5 (float)", "port=5556 (integer)"}},
		{format: "yaml", want: []string{"dt: 10", "host: my.host", "load: 0.5", "port: 5556"}},
		{format: "json", want: []string{`"dt": 10`, `"host": "my.host"`, `"load": 0.5`, `"port": 5556`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := execute(t, "parse", "host=my.host,port=5556,dt=10,load=0.5", "-o", tt.format)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, stdout, w)
			}
		})
	}
}

func TestParse_EmptyString(t *testing.T) {
	stdout, _, err := execute(t, "parse", "", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", stdout)
}

func TestParse_Malformed(t *testing.T) {
	stdout, stderr, err := execute(t, "parse", "portonly")

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "k=v")
	assert.Contains(t, stderr, "portonly")
}

func TestParse_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "parse", "host=h", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("x")))
	assert.Equal(t, 7, ExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: 7})))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, errors.New("engine failed"))
	assert.Equal(t, "Error: engine failed\n", buf.String())

	buf.Reset()
	Report(&buf, &ExitError{Code: 1, Reported: true})
	assert.Empty(t, buf.String())
}

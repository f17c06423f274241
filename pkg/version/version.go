// Package version holds build information stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/riemann/riemann-jvm-profiler/pkg/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
)

// Set by build flags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GoVersion is the toolchain the binary was built with.
var GoVersion = runtime.Version()

// String renders the build information printed by `profiler-agent version`.
func String() string {
	return fmt.Sprintf("profiler-agent version %s\nGit commit: %s\nBuild date: %s\nGo version: %s\n",
		Version, GitCommit, BuildDate, GoVersion)
}

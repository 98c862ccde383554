// Command runcache runs a shell command and caches its stdout, stderr, and
// exit code, replaying the cached result on repeat invocations within the
// TTL window.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/runcache/internal/cli"
	"github.com/rshade/runcache/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps its outcome to an exit code: the cached
// command's own code when it ran (or was replayed), a distinct internal
// code when runcache itself failed.
func run() int {
	rootCmd := cli.NewRootCmd(version.GetVersion())

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	// A command exiting non-zero is a faithfully replayed result, not a
	// runcache failure; its output has already been written.
	var exitErr *cli.ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	fmt.Fprintf(os.Stderr, "runcache: %v\n", err)
	return cli.InternalErrorExitCode
}

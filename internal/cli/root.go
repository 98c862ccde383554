// Package cli wires the runcache command tree: the root command that runs a
// shell command through the cache, and maintenance subcommands.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// logger is the package-level logger for CLI operations, configured by
// setupLogging before any RunE executes.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags holds the flag values for the root run command.
type rootFlags struct {
	TTL   string
	Clean bool
}

// NewRootCmd creates the root Cobra command. The root command itself runs
// the given shell command, replaying a cached result when a fresh one
// exists; `runcache cache ...` subcommands maintain the store.
func NewRootCmd(ver string) *cobra.Command {
	var flags rootFlags
	var closeLogging func() error

	cmd := &cobra.Command{
		Use:     "runcache [flags] '<command>'",
		Short:   "Cache the output of slow shell commands",
		Long:    "runcache runs a shell command and caches its stdout, stderr, and exit code.\nWithin the TTL window, repeated invocations replay the cached result instead\nof re-executing the command.",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.ExactArgs(1),
		// Errors are reported by main with the right exit code.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			closeFn, err := setupLogging(cmd)
			if err != nil {
				return err
			}
			closeLogging = closeFn
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if closeLogging != nil {
				return closeLogging()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCached(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.TTL, "ttl", "t", "",
		"seconds (or duration like 5m) the result stays fresh (default from config, 3600)")
	cmd.Flags().BoolVarP(&flags.Clean, "clean", "c", false,
		"discard any cached result and re-execute (the new result is cached again)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("cache-dir", "", "cache directory (overrides config and env)")

	cmd.AddCommand(newCacheCmd())

	return cmd
}

const rootCmdExample = `  # Run a slow command, caching its output for an hour (default TTL)
  runcache 'sleep 10 && date'

  # Cache for two seconds only
  runcache --ttl 2 'echo hello'

  # TTLs also accept durations
  runcache --ttl 15m 'curl -s https://example.com/api/status'

  # Force re-execution, replacing the cached result
  runcache --clean 'date'

  # List cached entries
  runcache cache list

  # Drop expired entries
  runcache cache cleanup

  # Drop everything
  runcache cache clear`

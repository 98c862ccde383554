package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/runcache/internal/cache"
	"github.com/rshade/runcache/internal/executor"
)

// runCached is the hit/miss orchestration: replay a fresh cached result, or
// execute the command, deliver its output, and store the result best-effort.
// The returned error is an *ExitCodeError carrying the command's own exit
// code; any other error is a runcache-internal failure.
func runCached(cmd *cobra.Command, command string, flags rootFlags) error {
	ctx := cmd.Context()

	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}

	ttlSeconds := cfg.Cache.TTLSeconds
	if flags.TTL != "" {
		ttlSeconds, err = cache.ParseTTL(flags.TTL)
		if err != nil {
			return err
		}
	}

	store, err := storeFromCmd(cmd)
	if err != nil {
		return err
	}

	if !flags.Clean {
		entry, lookupErr := store.Lookup(command)
		if lookupErr == nil {
			logger.Debug().
				Ctx(ctx).
				Str("key", cache.KeyPrefix(cache.Key(command))).
				Int("exit_code", entry.ExitCode).
				Msg("cache hit, replaying")
			replay(cmd, entry.Stdout, entry.Stderr)
			return exitError(entry.ExitCode)
		}
		// Missing, expired, and corrupt entries are all just misses.
		logger.Debug().
			Ctx(ctx).
			Str("key", cache.KeyPrefix(cache.Key(command))).
			Err(lookupErr).
			Msg("cache miss, executing")
	}

	result, err := executor.NewShell().Execute(ctx, command)
	if err != nil {
		return fmt.Errorf("executing command: %w", err)
	}

	// Deliver output before touching the cache: a failed store must never
	// cost the user the output of the command that just ran.
	replay(cmd, result.Stdout, result.Stderr)

	if storeErr := store.Store(command, result.Stdout, result.Stderr, result.ExitCode, ttlSeconds); storeErr != nil {
		logger.Warn().
			Ctx(ctx).
			Err(storeErr).
			Str("cache_dir", store.Dir()).
			Msg("failed to cache result; output delivered, next run re-executes")
	}

	return exitError(result.ExitCode)
}

// storeFromCmd builds the file store from the --cache-dir flag or config.
func storeFromCmd(cmd *cobra.Command) (*cache.FileStore, error) {
	cfg, err := configFromContext(cmd.Context())
	if err != nil {
		return nil, err
	}

	dir, _ := cmd.Flags().GetString("cache-dir")
	if dir == "" {
		dir = cfg.Cache.Dir
	}

	store, err := cache.NewFileStore(cache.Config{Dir: dir})
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// replay writes captured output to the invoking process's own streams,
// byte for byte. Write failures (e.g. a closed pipe downstream) are logged
// and otherwise ignored, matching what the command itself would experience.
func replay(cmd *cobra.Command, stdout, stderr []byte) {
	if len(stdout) > 0 {
		if _, err := cmd.OutOrStdout().Write(stdout); err != nil {
			logger.Warn().Err(err).Msg("writing stdout")
		}
	}
	if len(stderr) > 0 {
		if _, err := cmd.ErrOrStderr().Write(stderr); err != nil {
			logger.Warn().Err(err).Msg("writing stderr")
		}
	}
}

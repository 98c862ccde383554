package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/runcache/internal/config"
	"github.com/rshade/runcache/internal/logging"
)

// configKey is the context key for the resolved configuration.
type configKey struct{}

// contextWithConfig attaches the resolved config to ctx.
func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the config attached by setupLogging. Falls back
// to freshly resolved configuration if none is attached (direct RunE calls
// in tests).
func configFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg, nil
	}
	return config.New()
}

// setupLogging resolves configuration, builds the logger, and attaches the
// logger, trace ID, and config to the command context. It returns a close
// function for the log file handle.
func setupLogging(cmd *cobra.Command) (func() error, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.File = ""
	}

	baseLogger, closeFn := logging.New(logCfg)
	logger = logging.ComponentLogger(baseLogger, "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = baseLogger.WithContext(ctx)
	ctx = contextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)

	logger.Debug().
		Ctx(ctx).
		Str("command", cmd.Name()).
		Str("trace_id", traceID).
		Msg("command started")

	return closeFn, nil
}

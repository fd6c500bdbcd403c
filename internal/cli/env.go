package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/cfakit/internal/config"
	"github.com/roach88/cfakit/internal/dispatch"
	"github.com/roach88/cfakit/internal/logging"
)

// env is everything a command needs to run calculations.
type env struct {
	cfg        config.Config
	logger     *zap.Logger
	dispatcher *dispatch.Dispatcher
	formatter  *OutputFormatter
}

// newEnv loads the config, builds the logger and dispatcher, and reports
// setup failures through the formatter as command errors.
func newEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		TraceID:   newTraceID(),
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	if opts.ConfigPath != "" {
		formatter.VerboseLog("Loaded config from %s", opts.ConfigPath)
	}

	level := cfg.Log.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if opts.Verbose {
		level = "debug"
	}

	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.Log.Encoding)
	if err != nil {
		_ = formatter.Error(ErrCodeLogger, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "building logger", err)
	}
	logger = logger.With(zap.String("trace_id", formatter.TraceID), zap.String("command", cmd.Name()))

	return &env{
		cfg:        cfg,
		logger:     logger,
		dispatcher: dispatch.New(cfg, logger),
		formatter:  formatter,
	}, nil
}

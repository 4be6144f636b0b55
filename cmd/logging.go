package cmd

import (
	"dashmd/core/logger"
	"dashmd/core/server"

	"go.uber.org/zap"
)

// configureLogging builds the process logger and derives the web server's
// verbosity from the same level.
func configureLogging(cfg *logger.Config) (*zap.Logger, error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logg, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logg)
	logg.Debug("Set log level", zap.String("level", string(level)))

	server.ApplyLogLevel(level)
	if err := server.PublishEnvironment(level); err != nil {
		return nil, err
	}
	logg.Debug("Set server log level", zap.String("level", level.ServerLevel()))

	return logg, nil
}

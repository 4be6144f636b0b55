package server

import (
	"fmt"
	"os"

	"dashmd/core/logger"

	fiberlog "github.com/gofiber/fiber/v2/log"
)

// Environment published for the dashboard application.
const (
	// EnvResources selects where the dashboard loads client assets from.
	EnvResources = "DASHBOARD_RESOURCES"
	// EnvLogLevel carries the server-side verbosity, in the fatal..debug vocabulary.
	EnvLogLevel = "DASHBOARD_LOG_LEVEL"
	// EnvClientLogLevel carries the browser-side verbosity. It always equals EnvLogLevel.
	EnvClientLogLevel = "DASHBOARD_CLIENT_LOG_LEVEL"

	ResourcesCDN = "cdn"
)

// ApplyLogLevel sets the verbosity of fiber's internal logger from level.
func ApplyLogLevel(level logger.Level) {
	fiberlog.SetLevel(fiberLevel(level))
}

func fiberLevel(level logger.Level) fiberlog.Level {
	switch level.ServerLevel() {
	case "fatal":
		return fiberlog.LevelFatal
	case "error":
		return fiberlog.LevelError
	case "warn":
		return fiberlog.LevelWarn
	case "debug":
		return fiberlog.LevelDebug
	default:
		return fiberlog.LevelInfo
	}
}

// PublishEnvironment exports the dashboard's resource mode and its two
// verbosity variables, both derived from level. This is the only place the
// launcher writes process environment.
func PublishEnvironment(level logger.Level) error {
	vars := [][2]string{
		{EnvResources, ResourcesCDN},
		{EnvLogLevel, level.ServerLevel()},
		{EnvClientLogLevel, level.ServerLevel()},
	}
	for _, kv := range vars {
		if err := os.Setenv(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", kv[0], err)
		}
	}
	return nil
}

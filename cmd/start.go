package cmd

import (
	"context"
	"fmt"

	"dashmd/core/config"
	"dashmd/core/loader"
	"dashmd/core/logger"
	"dashmd/core/server"
	"dashmd/feature/dashboard"

	"go.uber.org/zap"
)

// Launch builds the dashboard application, binds the server and serves until
// ctx is done.
func Launch(ctx context.Context, cfg *config.Config, logg *zap.Logger) error {
	logg.Debug("Preparing the dashboard server",
		zap.Int("port", cfg.Server.Port),
		zap.Int("update", cfg.Dashboard.UpdateRate),
		zap.String("default_dir", cfg.Dashboard.DefaultDir),
	)

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	app, err := dashboard.NewApplication(dashboard.Dir(), cfg.Dashboard.Argv(cfg.Server.Port), dashboard.Options{
		Resources:      server.ResourcesCDN,
		ClientLogLevel: level.ServerLevel(),
		Logger:         logg,
	})
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	mgr := loader.NewManager(logg)
	mgr.Register(dashboard.NewFeature(app))

	srv, err := server.New(cfg.Server, logg, mgr)
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}

// PortInUseMessage tells the user how to get past a busy port.
func PortInUseMessage(port int) string {
	return fmt.Sprintf("Port %d is already in use. Please specify a different one by using the --port flag.", port)
}

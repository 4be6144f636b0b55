package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/template"

	"dashmd/core/config"
	"dashmd/core/logger"
	"dashmd/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is overridden at build time with -ldflags "-X dashmd/cmd.Version=...".
var Version = "0.6.0"

const versionTemplate = "DashMD version {{.Version}}\n"

// Exit codes of the launcher.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// UsageError reports malformed or unknown command-line input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Launcher starts the dashboard and blocks until ctx is done.
type Launcher func(ctx context.Context, cfg *config.Config, logg *zap.Logger) error

// NewRootCmd builds the dashmd command. launch runs once flags are parsed and
// logging is configured; it is never reached for --version or --help.
func NewRootCmd(launch Launcher) *cobra.Command {
	level := logger.LevelInfo

	cmd := &cobra.Command{
		Use:   "dashmd",
		Short: "Monitor and visualize MD simulations from Amber in real time",
		Long: `DashMD serves a dashboard on localhost that follows the output files of a
running Amber simulation and refreshes as new data is written.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(cmd, fmt.Errorf("unexpected arguments: %v", args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(".", cmd.Flags())
			if err != nil {
				return err
			}
			if noBrowser, _ := cmd.Flags().GetBool("no-browser"); noBrowser {
				cfg.Server.OpenBrowser = false
			}

			logg, err := configureLogging(&cfg.Log)
			if err != nil {
				return err
			}
			defer logg.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return launch(ctx, cfg, logg)
		},
	}

	cmd.SetVersionTemplate(versionTemplate)
	cmd.SetFlagErrorFunc(flagError)

	flags := cmd.Flags()
	flags.BoolP("version", "v", false, "Show version and exit")
	flags.IntP("port", "p", 5100, "Port number used by the dashboard server")
	flags.IntP("update", "u", 20, "Update rate to check and load new data, in seconds")
	flags.StringP("default-dir", "d", ".", "Default directory")
	flags.Var(&level, "log", "Set level of the logger (CRITICAL, ERROR, WARNING, INFO, DEBUG)")
	flags.Bool("no-browser", false, "Do not open the dashboard in a web browser")

	return cmd
}

// flagError honors a --version that was parsed before the malformed flag:
// the version is printed and the command succeeds.
func flagError(cmd *cobra.Command, err error) error {
	if f := cmd.Flags().Lookup("version"); f != nil && f.Changed {
		return template.Must(template.New("version").Parse(versionTemplate)).Execute(cmd.OutOrStdout(), cmd)
	}
	return usageError(cmd, err)
}

func usageError(cmd *cobra.Command, err error) error {
	cmd.PrintErr(cmd.UsageString())
	return &UsageError{Err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage):
		return ExitUsage
	default:
		return ExitError
	}
}

// Execute runs the launcher with the process arguments and exits.
func Execute() {
	os.Exit(run(NewRootCmd(Launch), os.Args[1:], newReportLogger()))
}

// newReportLogger builds the logger used for launch failures. It ignores
// --log so that failures are always visible.
func newReportLogger() *zap.Logger {
	// We default to console format to match user expectations (CLI tool)
	l, err := logger.New(&logger.Config{Level: "INFO", Format: "console"})
	if err == nil {
		return l
	}
	// Absolute fallback if logger creation fails (rare)
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zapcore.InfoLevel))
}

func run(root *cobra.Command, args []string, report *zap.Logger) int {
	root.SetArgs(args)
	err := root.Execute()

	var busy *server.PortInUseError
	switch {
	case err == nil:
	case errors.As(err, &busy):
		report.Error(PortInUseMessage(busy.Port))
	default:
		report.Error("command failed", zap.Error(err))
	}
	_ = report.Sync()

	return ExitCode(err)
}

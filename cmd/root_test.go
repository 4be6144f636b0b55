package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"testing"

	"dashmd/core/config"
	"dashmd/core/server"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	called bool
	cfg    *config.Config
	err    error
}

func (r *recorder) launch(ctx context.Context, cfg *config.Config, logg *zap.Logger) error {
	r.called = true
	r.cfg = cfg
	return r.err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DASHMD_SERVER_PORT", "DASHMD_SERVER_OPEN_BROWSER", "DASHMD_DASHBOARD_UPDATE",
		"DASHMD_DASHBOARD_DEFAULT_DIR", "DASHMD_LOG_LEVEL", "DASHMD_LOG_FORMAT",
		server.EnvResources, server.EnvLogLevel, server.EnvClientLogLevel,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func newTestCmd(r *recorder, args ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	root := NewRootCmd(r.launch)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	root.SetArgs(args)
	return root, stdout, stderr
}

func TestRootCmd_Version(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Long", []string{"--version", "--port", "1"}},
		{"Short", []string{"-v"}},
		{"BeforeMalformedPort", []string{"--version", "--port", "abc"}},
		{"BeforeInvalidLogLevel", []string{"--version", "--log", "VERBOSE"}},
		{"BeforeUnknownFlag", []string{"--version", "--color"}},
		{"ShortBeforeUnknownFlag", []string{"-v", "--color"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			root, stdout, _ := newTestCmd(r)

			core, logs := observer.New(zapcore.DebugLevel)
			code := run(root, tt.args, zap.New(core))

			assert.Equal(t, ExitOK, code)
			assert.Equal(t, "DashMD version "+Version+"\n", stdout.String())
			assert.Zero(t, logs.Len())
			assert.False(t, r.called, "version must not start the server")
		})
	}
}

func TestRootCmd_Defaults(t *testing.T) {
	clearEnv(t)
	r := &recorder{}
	root, _, _ := newTestCmd(r)

	require.NoError(t, root.Execute())
	require.True(t, r.called)

	assert.Equal(t, 5100, r.cfg.Server.Port)
	assert.Equal(t, 20, r.cfg.Dashboard.UpdateRate)
	assert.Equal(t, ".", r.cfg.Dashboard.DefaultDir)
	assert.Equal(t, "INFO", r.cfg.Log.Level)
	assert.True(t, r.cfg.Server.OpenBrowser)
}

func TestRootCmd_Flags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Long", []string{"--port", "6123", "--update", "5", "--default-dir", "/tmp/run1", "--log", "DEBUG", "--no-browser"}},
		{"Short", []string{"-p", "6123", "-u", "5", "-d", "/tmp/run1", "--log=DEBUG", "--no-browser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			r := &recorder{}
			root, _, _ := newTestCmd(r, tt.args...)

			require.NoError(t, root.Execute())
			require.True(t, r.called)

			assert.Equal(t, 6123, r.cfg.Server.Port)
			assert.Equal(t, 5, r.cfg.Dashboard.UpdateRate)
			assert.Equal(t, "/tmp/run1", r.cfg.Dashboard.DefaultDir)
			assert.Equal(t, "DEBUG", r.cfg.Log.Level)
			assert.False(t, r.cfg.Server.OpenBrowser)
		})
	}
}

func TestRootCmd_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"UnknownLogLevel", []string{"--log", "VERBOSE"}},
		{"LowercaseLogLevel", []string{"--log", "debug"}},
		{"UnknownFlag", []string{"--color"}},
		{"PortNotInteger", []string{"--port", "http"}},
		{"UpdateNotInteger", []string{"-u", "1.5"}},
		{"PositionalArgument", []string{"run1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			r := &recorder{}
			root, _, stderr := newTestCmd(r, tt.args...)

			err := root.Execute()
			require.Error(t, err)

			var usage *UsageError
			assert.ErrorAs(t, err, &usage)
			assert.Equal(t, ExitUsage, ExitCode(err))
			assert.Contains(t, stderr.String(), "Usage:")
			assert.False(t, r.called, "usage errors must not start the server")
		})
	}
}

func TestRootCmd_ConfiguresLogging(t *testing.T) {
	clearEnv(t)
	r := &recorder{}
	root, _, _ := newTestCmd(r, "--log", "CRITICAL")

	require.NoError(t, root.Execute())
	assert.Equal(t, "cdn", os.Getenv(server.EnvResources))
	assert.Equal(t, "fatal", os.Getenv(server.EnvLogLevel))
	assert.Equal(t, "fatal", os.Getenv(server.EnvClientLogLevel))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(&UsageError{Err: assert.AnError}))
	assert.Equal(t, ExitError, ExitCode(fmt.Errorf("%w: 5100", server.ErrPortInUse)))
	assert.Equal(t, ExitError, ExitCode(&server.PortInUseError{Port: 5100}))
	assert.Equal(t, ExitError, ExitCode(assert.AnError))
}

func TestRun_PortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	// the message must not depend on the user's log level
	for _, level := range []string{"INFO", "CRITICAL"} {
		t.Run(level, func(t *testing.T) {
			clearEnv(t)
			root := NewRootCmd(Launch)
			root.SetOut(new(bytes.Buffer))
			root.SetErr(new(bytes.Buffer))

			core, logs := observer.New(zapcore.InfoLevel)
			args := []string{"--port", fmt.Sprint(port), "--default-dir", t.TempDir(), "--no-browser", "--log", level}
			code := run(root, args, zap.New(core))

			assert.Equal(t, ExitError, code)
			entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
			require.Len(t, entries, 1)
			assert.Equal(t, PortInUseMessage(port), entries[0].Message)
			assert.Contains(t, entries[0].Message, fmt.Sprint(port))
			assert.Contains(t, entries[0].Message, "--port")
		})
	}
}

func TestRun_LauncherError(t *testing.T) {
	clearEnv(t)
	r := &recorder{err: assert.AnError}
	root, _, _ := newTestCmd(r)

	core, logs := observer.New(zapcore.InfoLevel)
	assert.Equal(t, ExitError, run(root, []string{}, zap.New(core)))
	require.Equal(t, 1, logs.FilterMessage("command failed").Len())
}

func TestRun_UsageErrorReported(t *testing.T) {
	clearEnv(t)
	r := &recorder{}
	root, _, _ := newTestCmd(r)

	core, logs := observer.New(zapcore.InfoLevel)
	assert.Equal(t, ExitUsage, run(root, []string{"--log", "VERBOSE"}, zap.New(core)))
	assert.Equal(t, 1, logs.FilterMessage("command failed").Len())
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dashmd/core/config"
	"dashmd/core/logger"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	level := logger.LevelInfo
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntP("port", "p", 5100, "")
	fs.IntP("update", "u", 20, "")
	fs.StringP("default-dir", "d", ".", "")
	fs.Var(&level, "log", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DASHMD_SERVER_PORT", "DASHMD_SERVER_OPEN_BROWSER", "DASHMD_DASHBOARD_UPDATE",
		"DASHMD_DASHBOARD_DEFAULT_DIR", "DASHMD_LOG_LEVEL", "DASHMD_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadConfig(t.TempDir(), newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, 5100, cfg.Server.Port)
	assert.True(t, cfg.Server.OpenBrowser)
	assert.Equal(t, 20, cfg.Dashboard.UpdateRate)
	assert.Equal(t, ".", cfg.Dashboard.DefaultDir)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_Flags(t *testing.T) {
	clearEnv(t)

	flags := newFlags(t, "--port", "6123", "-u", "5", "--default-dir", "/tmp/run1", "--log", "DEBUG")
	cfg, err := config.LoadConfig(t.TempDir(), flags)
	require.NoError(t, err)

	assert.Equal(t, 6123, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Dashboard.UpdateRate)
	assert.Equal(t, "/tmp/run1", cfg.Dashboard.DefaultDir)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DASHMD_SERVER_PORT", "7000")
	t.Setenv("DASHMD_LOG_LEVEL", "WARNING")

	cfg, err := config.LoadConfig(t.TempDir(), newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "WARNING", cfg.Log.Level)

	cfg, err = config.LoadConfig(t.TempDir(), newFlags(t, "--port", "7001"))
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port, "flags win over environment")
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DASHMD_DASHBOARD_UPDATE=45\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DASHMD_DASHBOARD_UPDATE") })

	cfg, err := config.LoadConfig(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Dashboard.UpdateRate)
}

func TestLoadConfig_InvalidLevelFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DASHMD_LOG_LEVEL", "verbose")

	_, err := config.LoadConfig(t.TempDir(), newFlags(t))
	assert.ErrorContains(t, err, "invalid log level")
}

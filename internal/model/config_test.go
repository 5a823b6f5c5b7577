package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Empty(t, cfg.Storage.Path)
	assert.False(t, cfg.Reset.KeepCompleted)
	assert.Equal(t, 60, cfg.Reset.CheckIntervalSec)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `storage:
  driver: sqlite
  path: /tmp/goals
reset:
  keep_completed: true
  check_interval_sec: 0
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/goals", cfg.Storage.Path)
	assert.True(t, cfg.Reset.KeepCompleted)
	assert.Equal(t, 60, cfg.Reset.CheckIntervalSec)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("GOALS_STORAGE_DRIVER", "sqlite")
	t.Setenv("GOALS_RESET_KEEP_COMPLETED", "true")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.True(t, cfg.Reset.KeepCompleted)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: postgres\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := defaultAppConfig()
	want.Storage.Driver = DriverSQLite
	want.Reset.KeepCompleted = true
	want.Reset.CheckIntervalSec = 30

	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want.Storage, got.Storage)
	assert.Equal(t, want.Reset, got.Reset)
}

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

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Display.RecentCount)
	assert.Equal(t, "careerlog.db", filepath.Base(cfg.Database.Path))
	assert.Equal(t, "careerlog.log", filepath.Base(cfg.Log.File))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CAREERLOG_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("CAREERLOG_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  path: /data/careers.db\ndisplay:\n  recent_count: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/careers.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Display.RecentCount)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &AppConfig{
		Database: DatabaseConfig{Path: "/data/careers.db"},
		Log:      LogConfig{Level: "warn", File: "/data/careers.log"},
		Display:  DisplayConfig{RecentCount: 3},
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEnsureConfig_WritesDefaultsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careerlog", "config.yaml")

	created, err := EnsureConfig(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.FileExists(t, path)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultAppConfig(), cfg)

	require.NoError(t, os.WriteFile(path, []byte("display:\n  recent_count: 7\n"), 0o644))
	created, err = EnsureConfig(path)
	require.NoError(t, err)
	assert.False(t, created, "an existing file is left alone")

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Display.RecentCount)
}

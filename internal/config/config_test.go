package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_NoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.ConfigPath = path
	assert.Equal(t, want, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `listen_addr: ":9000"
request_timeout: 3s
log_level: debug
open_browser: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.OpenBrowser)
	assert.Equal(t, Default().LogPath, cfg.LogPath)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log_level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.OpenBrowser)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "listen_addr: [unterminated\n"))
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	_, err := Load(writeConfig(t, "request_timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_timeout")

	_, err = Load(writeConfig(t, "request_timeout: -1s\n"))
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
icon_size = 32
validate_interval = "1m"
persist_pins = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 32, cfg.IconSize)
	assert.Equal(t, time.Minute, cfg.ValidateInterval)
	assert.False(t, cfg.PersistPins)
	assert.Equal(t, Default().IconWorkers, cfg.IconWorkers, "unset keys keep defaults")
	assert.Equal(t, Default().KeybindsPath, cfg.KeybindsPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `log_level = "debug"`)
	t.Setenv("SLOTJUMP_LOG_LEVEL", "warn")
	t.Setenv("SLOTJUMP_ICON_WORKERS", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 4, cfg.IconWorkers)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `icon_size = 2`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "icon_size")
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, `pins_path = "~/pins.db"`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pins.db"), cfg.PinsPath)
}

// Package config loads application settings from a TOML file and SLOTJUMP_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName   = "slotjump"
	envPrefix = "SLOTJUMP_"
)

type Config struct {
	LogLevel         string        `koanf:"log_level"`
	LogFile          string        `koanf:"log_file"`
	KeybindsPath     string        `koanf:"keybinds_path"`
	PinsPath         string        `koanf:"pins_path"`
	PersistPins      bool          `koanf:"persist_pins"`
	IconSize         int           `koanf:"icon_size"`
	IconWorkers      int           `koanf:"icon_workers"`
	ValidateInterval time.Duration `koanf:"validate_interval"` // 0 disables the periodic sweep
	Notifications    bool          `koanf:"notifications"`
}

// DefaultPath is $XDG_CONFIG_HOME/slotjump/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:         "info",
		KeybindsPath:     filepath.Join(xdg.ConfigHome, appName, "keybinds.json"),
		PinsPath:         filepath.Join(xdg.DataHome, appName, "pins.db"),
		PersistPins:      true,
		IconSize:         64,
		IconWorkers:      2,
		ValidateInterval: 30 * time.Second,
		Notifications:    true,
	}
}

// Load reads path (DefaultPath when empty) if it exists, then applies
// environment overrides such as SLOTJUMP_LOG_LEVEL=debug.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.KeybindsPath = expandPath(cfg.KeybindsPath)
	cfg.PinsPath = expandPath(cfg.PinsPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps SLOTJUMP_ICON_SIZE to icon_size.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func (c Config) validate() error {
	if c.IconSize < 8 || c.IconSize > 1024 {
		return fmt.Errorf("icon_size %d out of range 8-1024", c.IconSize)
	}
	if c.IconWorkers < 1 {
		return fmt.Errorf("icon_workers must be at least 1")
	}
	if c.ValidateInterval < 0 {
		return fmt.Errorf("validate_interval must not be negative")
	}
	return nil
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CheckedGlyph   string `mapstructure:"checked_glyph"`
	UncheckedGlyph string `mapstructure:"unchecked_glyph"`
	ShowCompleted  bool   `mapstructure:"show_completed"`
}

// Load reads configuration from file and env. Env var overrides use prefix TASKPAD_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "taskpad", "taskpad.db"))
	v.SetDefault("ui.checked_glyph", "[x]")
	v.SetDefault("ui.unchecked_glyph", "[ ]")
	v.SetDefault("ui.show_completed", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TASKPAD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "taskpad"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TASKPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI to persist preference toggles.
func Save(cfg Config) error {
	path := os.Getenv("TASKPAD_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "taskpad", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.checked_glyph", cfg.UI.CheckedGlyph)
	v.Set("ui.unchecked_glyph", cfg.UI.UncheckedGlyph)
	v.Set("ui.show_completed", cfg.UI.ShowCompleted)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ThemeConfig holds theme preset and color overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// ExternalEditorConfig controls the external editor round-trip.
type ExternalEditorConfig struct {
	AutoSave          bool   `mapstructure:"auto_save"`
	TempFileExtension string `mapstructure:"temp_file_extension"`
}

// SQLiteConfig selects the database/sql driver used by the sqlite backend.
type SQLiteConfig struct {
	Driver string `mapstructure:"driver"`
}

// Config holds the application configuration.
type Config struct {
	Storage        string               `mapstructure:"storage"`
	DataDir        string               `mapstructure:"data_dir"`
	StateDir       string               `mapstructure:"state_dir"`
	ExportDir      string               `mapstructure:"export_dir"`
	Editor         string               `mapstructure:"editor"`
	ExternalEditor ExternalEditorConfig `mapstructure:"external_editor"`
	ScrollPerPage  int                  `mapstructure:"scroll_per_page"`
	SQLite         SQLiteConfig         `mapstructure:"sqlite"`
	LogLevel       string               `mapstructure:"log_level"`
	MaxWidth       int                  `mapstructure:"max_width"`
	Theme          ThemeConfig          `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.journalctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".journalctl")
	}
	return filepath.Join(home, ".journalctl")
}

// DefaultStateDir returns $XDG_STATE_HOME/journalctl, or "" when the
// variable is unset so callers fall back to the data directory.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "journalctl")
	}
	return ""
}

// ResolvedStateDir is the directory holding UI state and the log file.
func (c *Config) ResolvedStateDir() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	return c.DataDir
}

// ResolvedExportDir is where the TUI export popup proposes files.
func (c *Config) ResolvedExportDir() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("state_dir", DefaultStateDir())
	v.SetDefault("export_dir", "")
	v.SetDefault("editor", "")
	v.SetDefault("external_editor.auto_save", false)
	v.SetDefault("external_editor.temp_file_extension", "md")
	v.SetDefault("scroll_per_page", 5)
	v.SetDefault("sqlite.driver", "libsql")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_width", 0)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "journalctl"))
		}
		v.AddConfigPath(filepath.Join(DefaultDataDir()))
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: JOURNALCTL_STORAGE, JOURNALCTL_DATA_DIR, etc.
	v.SetEnvPrefix("JOURNALCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	for _, dir := range []*string{&cfg.DataDir, &cfg.StateDir, &cfg.ExportDir} {
		if *dir == "" {
			continue
		}
		expanded, err := homedir.Expand(*dir)
		if err != nil {
			return nil, err
		}
		*dir = expanded
	}
	if cfg.ScrollPerPage <= 0 {
		cfg.ScrollPerPage = 5
	}

	return cfg, nil
}

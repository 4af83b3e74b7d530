// Package config loads pantry settings: defaults, then the YAML file, then
// PANTRY_* environment variables. Command-line flags are applied by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the whole configuration tree.
type Config struct {
	Storage   Storage   `yaml:"storage"`
	Inventory Inventory `yaml:"inventory"`
	Log       Log       `yaml:"log"`
	UI        UI        `yaml:"ui"`
}

// Storage selects and locates the key-value backend.
type Storage struct {
	Backend    string `yaml:"backend" env:"PANTRY_BACKEND"` // json | sqlite | memory
	DataDir    string `yaml:"data_dir" env:"PANTRY_DATA_DIR"`
	SQLiteFile string `yaml:"sqlite_file" env:"PANTRY_SQLITE_FILE"`
}

// Inventory tunes store behavior.
type Inventory struct {
	// MoveOnRecategorize moves an edited item into the category it was
	// reassigned to. When false the item stays in its original list.
	MoveOnRecategorize bool `yaml:"move_on_recategorize" env:"PANTRY_MOVE_ON_RECATEGORIZE"`
}

type Log struct {
	Level string `yaml:"level" env:"PANTRY_LOG_LEVEL"`
	File  string `yaml:"file" env:"PANTRY_LOG_FILE"` // relative to data_dir; "-" = stderr
}

type UI struct {
	Theme   string `yaml:"theme" env:"PANTRY_THEME"`
	NoColor bool   `yaml:"no_color"` // also set by any non-empty NO_COLOR
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Storage: Storage{
			Backend:    "json",
			DataDir:    DefaultDataDir(),
			SQLiteFile: "pantry.db",
		},
		Inventory: Inventory{MoveOnRecategorize: true},
		Log:       Log{Level: "info", File: "pantry.log"},
		UI:        UI{Theme: "classic"},
	}
}

// DefaultDataDir is ~/.pantry, falling back to ./.pantry without a home dir.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pantry"
	}
	return filepath.Join(home, ".pantry")
}

// DefaultPath is the config file looked up when none is given.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load reads path over the defaults, then applies the environment.
// A missing file is fine; a malformed one is not.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	var conventions struct {
		NoColor string `env:"NO_COLOR"`
	}
	if err := env.Parse(&conventions); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if conventions.NoColor != "" {
		cfg.UI.NoColor = true
	}
	cfg.Storage.DataDir = expandHome(cfg.Storage.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case "json", "sqlite", "memory":
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	return nil
}

// LogPath resolves Log.File against the data dir. Empty means stderr.
func (c *Config) LogPath() string {
	f := c.Log.File
	if f == "" || f == "-" {
		return ""
	}
	if filepath.IsAbs(f) {
		return f
	}
	return filepath.Join(c.Storage.DataDir, f)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Package config loads settings from defaults, TOML files, the environment
// and command-line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	DefaultDataDir  = "~/.tada"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"

	userConfigName    = "config.toml"
	projectConfigName = ".tada.toml"
)

var (
	backends  = []string{BackendFile, BackendSQLite, BackendMemory}
	themes    = []string{"classic", "neon", "mono"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`

	// Files lists the config files that were applied, lowest priority first.
	Files []string `toml:"-"`
}

type StorageConfig struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	SQLitePath string `toml:"sqlite_path"` // defaults to <dir>/tada.db
}

type UIConfig struct {
	Theme string `toml:"theme"`
	Group bool   `toml:"group"` // ls groups by active/completed
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // defaults to <dir>/tada.log; "-" means stderr
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendFile, Dir: DefaultDataDir},
		UI:      UIConfig{Theme: DefaultTheme},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Load builds the configuration:
//  1. defaults
//  2. user file (~/.tada/config.toml)
//  3. project file (.tada.toml in the working directory)
//  4. explicit file (path, must exist when non-empty)
//  5. TADA_* environment variables
//  6. override, typically CLI flags
//
// Derived paths are filled in and the result is validated.
func Load(path string, override func(*Config)) (*Config, error) {
	cfg := Default()

	for _, p := range []string{userConfigFile(), projectConfigFile()} {
		if p == "" {
			continue
		}
		if err := loadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)
	if override != nil {
		override(cfg)
	}

	finalize(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("TADA_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("TADA_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func finalize(cfg *Config) {
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.UI.Theme = strings.ToLower(strings.TrimSpace(cfg.UI.Theme))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	cfg.Storage.Dir = expandPath(cfg.Storage.Dir)
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(cfg.Storage.Dir, "tada.db")
	} else if cfg.Storage.SQLitePath != ":memory:" {
		cfg.Storage.SQLitePath = expandPath(cfg.Storage.SQLitePath)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Storage.Dir, "tada.log")
	} else if cfg.Log.File != "-" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
}

// Validate rejects values no component understands.
func (c *Config) Validate() error {
	var errs []error
	if !contains(backends, c.Storage.Backend) {
		errs = append(errs, fmt.Errorf("storage.backend: unknown backend %q (want one of %s)",
			c.Storage.Backend, strings.Join(backends, ", ")))
	}
	if c.Storage.Backend != BackendMemory && strings.TrimSpace(c.Storage.Dir) == "" {
		errs = append(errs, errors.New("storage.dir: must not be empty"))
	}
	if !contains(themes, c.UI.Theme) {
		errs = append(errs, fmt.Errorf("ui.theme: unknown theme %q (want one of %s)",
			c.UI.Theme, strings.Join(themes, ", ")))
	}
	if !contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q (want one of %s)",
			c.Log.Level, strings.Join(logLevels, ", ")))
	}
	return errors.Join(errs...)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the root configuration for tle, stored in ~/.tle/config.json.
// The file supports single-line // comments for documentation purposes.
// Every field can be overridden from the environment with a TLE_ prefix.
type Config struct {
	// DataDir holds day files, the catalog and attachments. Empty = ~/.tle.
	DataDir string `json:"data_dir" envconfig:"DATA_DIR"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `json:"log_level" envconfig:"LOG_LEVEL"`
	// MinIdleMinutes is the shortest idle window reported as a gap.
	MinIdleMinutes int `json:"min_idle_minutes" envconfig:"MIN_IDLE_MINUTES"`
	// DefaultWindowMinutes is how far back a fresh log starts when no
	// previous log end is known.
	DefaultWindowMinutes int `json:"default_window_minutes" envconfig:"DEFAULT_WINDOW_MINUTES"`
}

const (
	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "TLE"
	// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
	DefaultLogLevel = "warn"
	// DefaultMinIdleMinutes matches the form's gap threshold.
	DefaultMinIdleMinutes = 1
	// DefaultWindowMinutes is the fresh-log look-back.
	DefaultWindowMinutes = 60
)

// MinIdle returns MinIdleMinutes as a duration.
func (c Config) MinIdle() time.Duration {
	return time.Duration(c.MinIdleMinutes) * time.Minute
}

// DefaultWindow returns DefaultWindowMinutes as a duration.
func (c Config) DefaultWindow() time.Duration {
	return time.Duration(c.DefaultWindowMinutes) * time.Minute
}

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		LogLevel:             DefaultLogLevel,
		MinIdleMinutes:       DefaultMinIdleMinutes,
		DefaultWindowMinutes: DefaultWindowMinutes,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// tle configuration – ~/.tle/config.json
//
// All settings are optional. Environment variables with the TLE_ prefix
// (TLE_DATA_DIR, TLE_LOG_LEVEL, TLE_MIN_IDLE_MINUTES,
// TLE_DEFAULT_WINDOW_MINUTES) take precedence over this file.
{
  // Directory for day files, catalog.json and attachments.
  // Leave empty to use ~/.tle.
  "data_dir": "",

  // Log verbosity: debug, info, warn or error. --debug forces debug.
  "log_level": "warn",

  // Idle windows longer than this many minutes are listed by: tle gaps
  "min_idle_minutes": 1,

  // When no previous log end is known, a fresh log starts this many
  // minutes before now.
  "default_window_minutes": 60
}
`

// DefaultBaseDir returns ~/.tle.
func DefaultBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tle"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.tle/config.json, creating it with annotated defaults on first
// run, and applies TLE_ environment overrides.
func Load() (Config, error) {
	base, err := DefaultBaseDir()
	if err != nil {
		return finish(defaultConfig(), "")
	}
	return LoadFile(filepath.Join(base, "config.json"))
}

// LoadFile is Load for an explicit config path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return finish(defaultConfig(), filepath.Dir(path))
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	return finish(cfg, filepath.Dir(path))
}

// finish applies environment overrides and back-fills zero values so callers
// always get a usable Config even if the file is only partially filled in.
func finish(cfg Config, dir string) (Config, error) {
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("reading %s_ environment: %w", EnvPrefix, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.MinIdleMinutes <= 0 {
		cfg.MinIdleMinutes = DefaultMinIdleMinutes
	}
	if cfg.DefaultWindowMinutes <= 0 {
		cfg.DefaultWindowMinutes = DefaultWindowMinutes
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Package config loads the rewind demo configuration from a TOML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "REWIND_"

// Config holds the demo application settings.
type Config struct {
	Script   ScriptConfig   `toml:"script"`
	Scenario ScenarioConfig `toml:"scenario"`
	Watch    WatchConfig    `toml:"watch"`
	UI       UIConfig       `toml:"ui"`
}

// ScriptConfig bounds Lua script execution.
type ScriptConfig struct {
	Timeout duration `toml:"timeout"`
}

// ScenarioConfig locates scenario documents.
type ScenarioConfig struct {
	Dir string `toml:"dir"`
}

// WatchConfig tunes the live-reload watcher.
type WatchConfig struct {
	Debounce duration `toml:"debounce"`
}

// UIConfig tunes the interactive explorer.
type UIConfig struct {
	ShowIDs bool `toml:"show_ids"`
}

// duration wraps time.Duration so TOML values like "200ms" parse.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Value returns the wrapped duration.
func (d duration) Value() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Script: ScriptConfig{
			Timeout: duration(5 * time.Second),
		},
		Scenario: ScenarioConfig{
			Dir: "scenarios",
		},
		Watch: WatchConfig{
			Debounce: duration(200 * time.Millisecond),
		},
		UI: UIConfig{
			ShowIDs: false,
		},
	}
}

// Load reads the TOML file at path over the defaults and applies
// environment overrides. A missing file is not an error; an empty path
// skips file loading entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to env overrides.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers REWIND_-prefixed environment variables over cfg.
// Unparsable values are ignored; the environment is a convenience layer,
// not a place to fail startup from.
func applyEnv(cfg *Config) {
	if v, ok := lookup("SCRIPT_TIMEOUT"); ok {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Script.Timeout = duration(parsed)
		}
	}
	if v, ok := lookup("SCENARIO_DIR"); ok {
		cfg.Scenario.Dir = v
	}
	if v, ok := lookup("WATCH_DEBOUNCE"); ok {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Watch.Debounce = duration(parsed)
		}
	}
	if v, ok := lookup("UI_SHOW_IDS"); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.UI.ShowIDs = parsed
		}
	}
}

func lookup(name string) (string, bool) {
	return os.LookupEnv(EnvPrefix + name)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search path.
const FileName = "boulder.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.boulder/config.yaml -> ./configs/boulder.yaml -> embedded default
// Files are layered over Default, so a partial file only overrides the keys
// it sets. Only an explicit customPath that cannot be read is an error.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultYAML); err == nil {
		return cfg, nil
	}
	return Default(), nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".boulder", "config.yaml"))
	}
	return append(paths, filepath.Join("configs", FileName))
}

// Validate rejects values the programs cannot run with.
func (c Config) Validate() error {
	if c.Play.TickIntervalMs <= 0 {
		return fmt.Errorf("config: play.tick_interval_ms must be positive, got %d", c.Play.TickIntervalMs)
	}
	if c.Verify.MaxTicks < 0 || c.Verify.MinTickIntervalMs < 0 || c.Verify.Workers < 0 {
		return fmt.Errorf("config: verify values must not be negative")
	}
	// A live client faster than the verifier's floor gets every run flagged.
	if floor := c.Verify.MinTickIntervalMs; floor > 0 && c.Play.TickIntervalMs < floor {
		return fmt.Errorf("config: play.tick_interval_ms %d is below verify.min_tick_interval_ms %d",
			c.Play.TickIntervalMs, floor)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

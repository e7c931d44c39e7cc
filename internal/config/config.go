// Package config loads the YAML configuration for the boulder CLI, the SSH
// server and the verifier. Simulation rules are not configurable.
package config

import "time"

// Config is the root configuration document.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Play     PlayConfig     `yaml:"play"`
	Verify   VerifyConfig   `yaml:"verify"`
	Server   ServerConfig   `yaml:"server"`
	Daily    DailyConfig    `yaml:"daily"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path"` // "~" expands to the home directory
}

// LogConfig sets logger verbosity.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// PlayConfig controls the interactive client.
type PlayConfig struct {
	TickIntervalMs int    `yaml:"tick_interval_ms"`
	RecordDir      string `yaml:"record_dir"` // Finished runs are archived here when recording
}

// VerifyConfig controls replay verification.
type VerifyConfig struct {
	MaxTicks          int `yaml:"max_ticks"`
	MinTickIntervalMs int `yaml:"min_tick_interval_ms"`
	Workers           int `yaml:"workers"` // 0 = GOMAXPROCS
}

// ServerConfig controls the SSH server.
type ServerConfig struct {
	Address        string `yaml:"address"`
	HostKeyPath    string `yaml:"host_key_path"`
	IdleTimeoutSec int    `yaml:"idle_timeout_sec"`
	MaxSessions    int    `yaml:"max_sessions"`
}

// DailyConfig sets the greeting stored with new daily configs.
type DailyConfig struct {
	Message string `yaml:"message"`
}

// TickInterval returns the play tick period.
func (c PlayConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// MinTickInterval returns the fastest plausible tick period.
func (c VerifyConfig) MinTickInterval() time.Duration {
	return time.Duration(c.MinTickIntervalMs) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSec) * time.Second
}

package config

import (
	_ "embed"
)

//go:embed defaults/boulder.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/boulder.yaml.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Path: "~/.boulder/boulder.db"},
		Log:      LogConfig{Level: "info"},
		Play: PlayConfig{
			TickIntervalMs: 150,
			RecordDir:      "~/.boulder/runs",
		},
		Verify: VerifyConfig{
			MaxTicks:          20000,
			MinTickIntervalMs: 100,
		},
		Server: ServerConfig{
			Address:        ":2222",
			HostKeyPath:    ".ssh/boulder_ed25519",
			IdleTimeoutSec: 600,
			MaxSessions:    32,
		},
		Daily: DailyConfig{Message: "Good luck!"},
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boulder-daily/internal/config"
	"github.com/vovakirdan/boulder-daily/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the boulder SSH server",
	Long: `Start an SSH server that lets anyone play today's level remotely.

Each SSH connection gets its own run on the daily seed. Finished runs are
replayed on the server and stored, so the leaderboard only ranks runs the
server verified itself.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path from the config

Examples:
  boulder serve                           # Listen on the configured address
  boulder serve --ssh :2222               # Listen on port 2222
  boulder serve --host-key ./my_host_key  # Use specific host key
  boulder serve --max-sessions 8

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default: config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default: config)")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Concurrent player limit (default: config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	sc := app.cfg.Server
	cfg := tui.SSHServerConfig{
		Address:      sc.Address,
		HostKeyPath:  config.ExpandHome(sc.HostKeyPath),
		IdleTimeout:  sc.IdleTimeout(),
		MaxSessions:  sc.MaxSessions,
		TickInterval: app.cfg.Play.TickInterval(),
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flagMaxSessions > 0 {
		cfg.MaxSessions = flagMaxSessions
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	cfg.DailySeeds = store.DailySeeds(app.cfg.Daily.Message)

	verifier := newVerifier(newLogger("verify"), store)
	server, err := tui.NewSSHServer(cfg, verifier, newLogger("boulder-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting boulder SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

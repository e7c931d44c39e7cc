// boulder is a daily-seeded Boulder Dash style game with replay verification.
//
// Usage:
//
//	boulder play             - Play today's level (or --practice)
//	boulder daily            - Show or set the daily seed
//	boulder verify <files>   - Replay submission files and check their claims
//	boulder replay <file>    - Step through a recorded run
//	boulder runs             - Show verified runs for a seed
//	boulder serve            - Start SSH server for remote play
//	boulder list             - List game modes
//
// Global flags:
//
//	--config <path>     - Config file (default: search path)
//	--db <path>         - Database path (overrides config)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/boulder-daily/internal/games/boulder"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boulder",
	Short: "Boulder Daily - dig, dodge rocks, escape",
	Long: `Boulder Daily is a terminal game where everyone digs through the same
level each day. Every run records its inputs so a verifier can replay it and
prove the score.

Available commands:
  play     - Play today's level or a practice seed
  daily    - Show or set the daily seed
  verify   - Replay submission files and check their claims
  replay   - Step through a recorded run
  runs     - Show verified runs for a seed
  serve    - Start SSH server for remote play
  list     - Show the game modes

Examples:
  boulder play
  boulder play --practice --seed abc
  boulder verify runs/*.json.zst --save
  boulder serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boulder-daily/internal/config"
	"github.com/vovakirdan/boulder-daily/internal/core"
	"github.com/vovakirdan/boulder-daily/internal/games/boulder"
	"github.com/vovakirdan/boulder-daily/internal/platform/tui"
	"github.com/vovakirdan/boulder-daily/internal/registry"
	"github.com/vovakirdan/boulder-daily/internal/verify"
)

var (
	flagPractice bool
	flagPlaySeed string
	flagRecord   string
	flagArchive  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play today's level",
	Long: `Start a run on today's shared level, or on any seed in practice mode.

Collect 10 gems to open the exit, then reach it. Rocks and gems fall and roll
off each other; a falling rock landing on you ends the run.

Controls:
  Arrows/WASD - Move (dig, collect, push rocks sideways)
  Space       - Wait one tick
  P/Esc       - Pause
  R           - Restart (after the run ends)
  Q/Ctrl+C    - Quit

Finished runs are replayed locally and saved to the runs database.

Examples:
  boulder play
  boulder play --practice
  boulder play --practice --seed abc
  boulder play --record run.json.zst
  boulder play --archive`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Practice mode (random or --seed level)")
	playCmd.Flags().StringVar(&flagPlaySeed, "seed", "", "Level seed for practice mode")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write the latest run to this file (.zst compresses)")
	playCmd.Flags().BoolVar(&flagArchive, "archive", false, "Write every run to the configured record_dir")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagPlaySeed != "" && !flagPractice {
		return errors.New("--seed needs --practice; the daily level is fixed")
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	minW, minH := boulder.MinScreen()
	if width < minW || height < minH+1 {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", width, height, minW, minH+1)
	}

	cfg := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: app.cfg.Play.TickInterval(),
		Seed:         flagPlaySeed,
		Clock:        time.Now,
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - runs are still verified
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	gameID := boulder.IDDaily
	if flagPractice {
		gameID = boulder.IDPractice
	} else if store != nil {
		// An operator may have pinned a different seed for today.
		seed, err := store.DailySeeds(app.cfg.Daily.Message)(cmd.Context(), cfg.Clock())
		if err != nil {
			return err
		}
		cfg.Seed = seed
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	var saver verify.RunSaver
	if store != nil {
		saver = store
	}
	opts := tui.Options{
		Verifier:   newVerifier(quietLogger(), saver),
		RecordPath: flagRecord,
	}
	if flagArchive {
		opts.RecordDir = config.ExpandHome(app.cfg.Play.RecordDir)
	}

	if err := tui.Run(game, cfg, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/boulder-daily/internal/config"
	"github.com/vovakirdan/boulder-daily/internal/storage"
	"github.com/vovakirdan/boulder-daily/internal/verify"
)

// app holds what every command shares once flags are parsed.
var app struct {
	cfg   config.Config
	level log.Level
}

func loadApp(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Database.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	app.cfg = cfg
	app.level = level
	return nil
}

// newLogger returns a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           app.level,
	})
}

// quietLogger discards everything. The TUI owns the terminal while it runs.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore() (*storage.Store, error) {
	return storage.Open(app.cfg.Database.Path)
}

// newVerifier builds a verifier from config. saver may be nil.
func newVerifier(logger *log.Logger, saver verify.RunSaver) *verify.Verifier {
	return &verify.Verifier{
		MaxTicks:        app.cfg.Verify.MaxTicks,
		MinTickInterval: app.cfg.Verify.MinTickInterval(),
		Workers:         app.cfg.Verify.Workers,
		Logger:          logger,
		Saver:           saver,
	}
}

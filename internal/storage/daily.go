package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/boulder-daily/internal/daily"
)

// DailyConfig is the seed and greeting published for one calendar date.
type DailyConfig struct {
	Date    string
	Seed    string
	Message string
}

// DailyConfig loads the config for a YYYY-MM-DD date.
func (s *Store) DailyConfig(ctx context.Context, date string) (*DailyConfig, error) {
	cfg := DailyConfig{Date: date}
	err := s.db.QueryRowContext(ctx,
		`SELECT seed, message FROM daily_configs WHERE date = ?`, date,
	).Scan(&cfg.Seed, &cfg.Message)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: daily config %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load daily config: %w", err)
	}
	return &cfg, nil
}

// SetDailyConfig inserts or replaces the config for cfg.Date.
func (s *Store) SetDailyConfig(ctx context.Context, cfg DailyConfig) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_configs (date, seed, message) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET seed = excluded.seed, message = excluded.message`,
		cfg.Date, cfg.Seed, cfg.Message,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save daily config: %w", err)
	}
	return nil
}

// EnsureDailyConfig returns the stored config for fallback.Date, storing
// fallback first when none exists.
func (s *Store) EnsureDailyConfig(ctx context.Context, fallback DailyConfig) (*DailyConfig, error) {
	cfg, err := s.DailyConfig(ctx, fallback.Date)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err := s.SetDailyConfig(ctx, fallback); err != nil {
		return nil, err
	}
	return &fallback, nil
}

// DailyConfigFor returns the config for date's UTC calendar day, storing the
// derived seed with message when the day has no config yet.
func (s *Store) DailyConfigFor(ctx context.Context, date time.Time, message string) (*DailyConfig, error) {
	key := daily.DateKey(date)
	return s.EnsureDailyConfig(ctx, DailyConfig{
		Date:    key,
		Seed:    daily.SeedForKey(key),
		Message: message,
	})
}

// DailySeeds returns a lookup that honors pinned seeds. Days seen for the
// first time are stored with message.
func (s *Store) DailySeeds(message string) daily.Lookup {
	return func(ctx context.Context, date time.Time) (string, error) {
		cfg, err := s.DailyConfigFor(ctx, date, message)
		if err != nil {
			return "", err
		}
		return cfg.Seed, nil
	}
}

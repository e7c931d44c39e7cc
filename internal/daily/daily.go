// Package daily derives the shared level seed for a calendar day.
package daily

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DateLayout is the calendar key format.
const DateLayout = "2006-01-02"

// DefaultMessage accompanies a freshly created daily config.
const DefaultMessage = "Good luck!"

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// SeedFor returns the seed shared by every player on t's UTC date: the first
// eight hex digits of SHA-256 over the date key.
func SeedFor(t time.Time) string {
	return SeedForKey(DateKey(t))
}

// SeedForKey is SeedFor for an already formatted date key.
func SeedForKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:8]
}

// Today returns today's date key and seed using the given clock.
func Today(now func() time.Time) (key, seed string) {
	key = DateKey(now())
	return key, SeedForKey(key)
}

// ParseDate validates a YYYY-MM-DD key.
func ParseDate(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("daily: invalid date %q: %w", key, err)
	}
	return t, nil
}

// Lookup resolves the seed played on a calendar date. A store-backed Lookup
// returns pinned seeds where an operator set one.
type Lookup func(ctx context.Context, date time.Time) (string, error)

// Derived is the Lookup that ignores pins and always returns SeedFor.
func Derived(_ context.Context, date time.Time) (string, error) {
	return SeedFor(date), nil
}

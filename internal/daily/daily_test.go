package daily

import (
	"context"
	"testing"
	"time"
)

func TestSeedFor(t *testing.T) {
	tests := []struct {
		date string
		seed string
	}{
		{"2026-10-14", "cf1ac2a9"},
		{"2025-01-01", "14973c59"},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := SeedFor(d); got != tt.seed {
			t.Errorf("SeedFor(%s) = %s, want %s", tt.date, got, tt.seed)
		}
	}
}

func TestDateKeyUsesUTC(t *testing.T) {
	// 23:30 on the 13th in UTC-5 is already the 14th in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2026, 10, 13, 23, 30, 0, 0, loc)
	if got := DateKey(local); got != "2026-10-14" {
		t.Fatalf("DateKey = %s", got)
	}
}

func TestToday(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC) }
	key, seed := Today(now)
	if key != "2026-10-14" || seed != "cf1ac2a9" {
		t.Fatalf("Today = %s, %s", key, seed)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("14/10/2026"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDerivedMatchesSeedFor(t *testing.T) {
	day := time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)
	seed, err := Derived(context.Background(), day)
	if err != nil {
		t.Fatal(err)
	}
	if seed != SeedFor(day) {
		t.Fatalf("Derived = %q, SeedFor = %q", seed, SeedFor(day))
	}
}

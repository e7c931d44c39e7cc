package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boulder-daily/internal/daily"
	"github.com/vovakirdan/boulder-daily/internal/storage"
)

type fakeLister struct {
	runs  map[string][]storage.Run
	seeds []string
	err   error
}

func (f *fakeLister) TopRuns(_ context.Context, seed string, limit int) ([]storage.Run, error) {
	f.seeds = append(f.seeds, seed)
	if f.err != nil {
		return nil, f.err
	}
	runs := f.runs[seed]
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (f *fakeLister) RunStats(_ context.Context, seed string) (*storage.Stats, error) {
	return &storage.Stats{Runs: len(f.runs[seed]), Verified: len(f.runs[seed])}, nil
}

func TestLeaderboardStepsThroughDays(t *testing.T) {
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	next := daily.SeedFor(day.AddDate(0, 0, 1))
	lister := &fakeLister{runs: map[string][]storage.Run{
		next: {{Score: 1225, Gems: 10, TimeMs: 9000, Won: true, CreatedAt: day}},
	}}

	m := NewDailyLeaderboard(lister, nil, day, 10, 80, 24)
	if m.seed != "cf1ac2a9" {
		t.Fatalf("seed = %q, want cf1ac2a9", m.seed)
	}
	if !strings.Contains(m.View(), "No verified runs yet") {
		t.Error("empty day does not show the empty message")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(LeaderboardModel)
	if m.seed != next || len(m.rows) != 1 {
		t.Fatalf("after right: seed %q rows %d", m.seed, len(m.rows))
	}
	if !strings.Contains(m.View(), "1225") {
		t.Error("view missing the run score")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(LeaderboardModel)
	if m.seed != "cf1ac2a9" {
		t.Errorf("after left: seed %q", m.seed)
	}
}

func TestLeaderboardUsesPinnedSeed(t *testing.T) {
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	pins := map[string]string{"2026-10-14": "pinned"}
	seeds := func(ctx context.Context, date time.Time) (string, error) {
		if seed, ok := pins[daily.DateKey(date)]; ok {
			return seed, nil
		}
		return daily.Derived(ctx, date)
	}
	lister := &fakeLister{runs: map[string][]storage.Run{
		"pinned": {{Score: 990, Gems: 10, TimeMs: 8000, Won: true, CreatedAt: day}},
	}}

	m := NewDailyLeaderboard(lister, seeds, day, 10, 80, 24)
	if got := m.Title(); got != "DAILY 2026-10-14 - seed pinned" {
		t.Fatalf("title = %q", got)
	}
	if len(m.rows) != 1 || !strings.Contains(m.View(), "990") {
		t.Fatalf("pinned runs not listed: %+v", m.rows)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(LeaderboardModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(LeaderboardModel)
	want := []string{"pinned", daily.SeedFor(day.AddDate(0, 0, 1)), "pinned"}
	if strings.Join(lister.seeds, ",") != strings.Join(want, ",") {
		t.Fatalf("queried seeds %v, want %v", lister.seeds, want)
	}
}

func TestLeaderboardShowsSeedLookupError(t *testing.T) {
	seeds := func(context.Context, time.Time) (string, error) {
		return "", errors.New("config table locked")
	}
	lister := &fakeLister{}
	m := NewDailyLeaderboard(lister, seeds, time.Now(), 10, 80, 24)
	if !strings.Contains(m.View(), "config table locked") {
		t.Error("lookup error not shown")
	}
	if len(lister.seeds) != 0 {
		t.Errorf("runs queried without a seed: %v", lister.seeds)
	}
}

func TestLeaderboardFixedSeedIgnoresDays(t *testing.T) {
	lister := &fakeLister{}
	m := NewLeaderboard(lister, "abc", 5, 80, 24)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(LeaderboardModel)
	if len(lister.seeds) != 1 || m.seed != "abc" {
		t.Errorf("fixed seed reloaded: %v", lister.seeds)
	}
	if !strings.Contains(m.Title(), "seed abc") {
		t.Errorf("title = %q", m.Title())
	}
}

func TestLeaderboardShowsLoadError(t *testing.T) {
	lister := &fakeLister{err: errors.New("disk gone")}
	m := NewLeaderboard(lister, "abc", 5, 80, 24)
	if !strings.Contains(m.View(), "disk gone") {
		t.Error("load error not shown")
	}
}

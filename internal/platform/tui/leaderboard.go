package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/boulder-daily/internal/daily"
	"github.com/vovakirdan/boulder-daily/internal/storage"
)

// RunLister reads ranked runs. *storage.Store implements it.
type RunLister interface {
	TopRuns(ctx context.Context, seed string, limit int) ([]storage.Run, error)
	RunStats(ctx context.Context, seed string) (*storage.Stats, error)
}

var _ RunLister = (*storage.Store)(nil)

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevDay, k.NextDay, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.PrevDay, k.NextDay, k.Quit}}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel shows the verified runs of one seed. In daily mode the
// left and right keys step through calendar days.
type LeaderboardModel struct {
	runs   RunLister
	seeds  daily.Lookup
	limit  int
	date   time.Time // Zero for a fixed seed
	seed   string
	rows   []storage.Run
	stats  *storage.Stats
	err    error
	table  table.Model
	help   help.Model
	keys   LeaderboardKeyMap
	width  int
	height int
}

// NewLeaderboard creates a leaderboard for a fixed seed.
func NewLeaderboard(runs RunLister, seed string, limit, width, height int) LeaderboardModel {
	m := newLeaderboard(runs, limit, width, height)
	m.seed = seed
	m.load()
	return m
}

// NewDailyLeaderboard creates a leaderboard starting at date. seeds maps each
// day to the seed played on it; nil uses the derived seeds.
func NewDailyLeaderboard(runs RunLister, seeds daily.Lookup, date time.Time, limit, width, height int) LeaderboardModel {
	if seeds == nil {
		seeds = daily.Derived
	}
	m := newLeaderboard(runs, limit, width, height)
	m.seeds = seeds
	m.date = date.UTC()
	m.load()
	return m
}

func newLeaderboard(runs RunLister, limit, width, height int) LeaderboardModel {
	m := LeaderboardModel{
		runs:   runs,
		limit:  limit,
		help:   help.New(),
		keys:   DefaultLeaderboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

func (m *LeaderboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Gems", Width: 6},
		{Title: "Time", Width: 9},
		{Title: "Won", Width: 5},
		{Title: "Played", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the runs and stats for the current seed, resolving the seed
// first in daily mode.
func (m *LeaderboardModel) load() {
	ctx := context.Background()
	m.rows, m.stats = nil, nil
	if !m.date.IsZero() {
		if m.seed, m.err = m.seeds(ctx, m.date); m.err != nil {
			m.table.SetRows(nil)
			return
		}
	}
	m.rows, m.err = m.runs.TopRuns(ctx, m.seed, m.limit)
	if m.err == nil {
		m.stats, m.err = m.runs.RunStats(ctx, m.seed)
	}
	m.table.SetRows(leaderboardRows(m.rows))
	m.table.GotoTop()
}

func leaderboardRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		won := ""
		if r.Won {
			won = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Gems),
			fmt.Sprintf("%.1fs", float64(r.TimeMs)/1000),
			won,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *LeaderboardModel) shiftDay(days int) {
	if m.date.IsZero() {
		return
	}
	m.date = m.date.AddDate(0, 0, days)
	m.load()
}

// Init implements tea.Model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevDay):
			m.shiftDay(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.shiftDay(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(leaderboardRows(m.rows))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Title returns the heading for the current seed.
func (m LeaderboardModel) Title() string {
	if m.date.IsZero() {
		return "VERIFIED RUNS - seed " + m.seed
	}
	return fmt.Sprintf("DAILY %s - seed %s", daily.DateKey(m.date), m.seed)
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(m.Title()))
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.stats != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d runs · %d verified · %d suspicious · %d wins · avg %.0f",
			m.stats.Runs, m.stats.Verified, m.stats.Suspicious, m.stats.Wins, m.stats.AvgScore)))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m LeaderboardModel) renderTableContent() string {
	if m.err != nil {
		return warnStyle.Render("cannot load runs: " + m.err.Error())
	}
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No verified runs yet.\nFinish a run to claim the top spot!")
	}
	return m.table.View()
}

// RunLeaderboard shows the leaderboard in the alternate screen.
func RunLeaderboard(m LeaderboardModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boulder-daily/internal/core"
	"github.com/vovakirdan/boulder-daily/internal/games/boulder"
	"github.com/vovakirdan/boulder-daily/internal/games/boulder/engine"
	"github.com/vovakirdan/boulder-daily/internal/registry"
	"github.com/vovakirdan/boulder-daily/internal/submission"
	"github.com/vovakirdan/boulder-daily/internal/verify"
)

// Options wires the services a finished run is reported to.
type Options struct {
	// Verifier replays every finished run. Nil uses a quiet verifier
	// without storage.
	Verifier *verify.Verifier

	// RecordPath, when set, receives the latest run as a submission file.
	// Otherwise RecordDir, when set, receives one timestamped file per run.
	RecordPath string
	RecordDir  string

	// Nonce is stored with every run of this model.
	Nonce string
}

// runSource is implemented by games whose runs can be replayed.
type runSource interface {
	Seed() string
	Mode() boulder.Mode
	Result() (engine.Result, bool)
	Err() error
}

// RecordedMsg reports a finished run after verification and archiving.
type RecordedMsg struct {
	Report verify.Report
	Path   string
	Err    error
}

// Model is the Bubble Tea model for one player's runs.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	note       string
	noteWarn   bool
	quitting   bool
}

// NewModel creates a model and starts the first run.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = engine.TickInterval
	}
	if opts.Verifier == nil {
		opts.Verifier = &verify.Verifier{Logger: log.New(io.Discard)}
	}

	game.Reset(cfg)
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:     cfg,
		opts:       opts,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case RecordedMsg:
		m.note, m.noteWarn = describe(msg)
		return m, nil
	}

	return m, nil
}

// handleTick runs one simulation step with the keys pressed since the last.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	next := tickCmd(m.config.TickInterval)
	if wasOver && !m.gameState.GameOver {
		m.note = ""
	}
	if !result.Finished {
		return m, next
	}
	return m, tea.Batch(next, m.finish())
}

// finish builds the submission for the run that just ended and returns a
// command that verifies and archives it off the UI loop.
func (m Model) finish() tea.Cmd {
	src, ok := m.game.(runSource)
	if !ok {
		return nil
	}
	res, ok := src.Result()
	if !ok {
		err := errors.New("run aborted")
		if cause := src.Err(); cause != nil {
			err = fmt.Errorf("run aborted: %w", cause)
		}
		return func() tea.Msg { return RecordedMsg{Err: err} }
	}

	sub := submission.New(submission.Mode(src.Mode()), src.Seed(), m.opts.Nonce, res)
	path := m.recordPath(sub)
	verifier := m.opts.Verifier
	return func() tea.Msg {
		rep, err := verifier.Check(context.Background(), sub)
		if err != nil {
			return RecordedMsg{Report: rep, Err: err}
		}
		if path != "" {
			if err := submission.Write(path, sub); err != nil {
				return RecordedMsg{Report: rep, Err: err}
			}
		}
		return RecordedMsg{Report: rep, Path: path}
	}
}

func (m Model) recordPath(sub submission.Submission) string {
	switch {
	case m.opts.RecordPath != "":
		return m.opts.RecordPath
	case m.opts.RecordDir != "":
		stamp := m.config.Clock().UTC().Format("20060102-150405")
		name := fmt.Sprintf("%s-%s-%s.json%s", sub.Mode, sub.Seed, stamp, submission.CompressedExt)
		return filepath.Join(m.opts.RecordDir, name)
	}
	return ""
}

func describe(msg RecordedMsg) (note string, warn bool) {
	rep := msg.Report
	switch {
	case msg.Err != nil:
		return msg.Err.Error(), true
	case !rep.Valid():
		return fmt.Sprintf("replay rejected: %s", rep.Verdict.Reason), true
	case rep.Suspicious:
		return "replay ok, timing suspicious", true
	}
	note = fmt.Sprintf("verified %d points", rep.Verdict.Replayed.Score)
	if rep.RunID != "" {
		note += " · saved " + rep.RunID[:8]
	}
	if msg.Path != "" {
		note += " · " + msg.Path
	}
	return note, false
}

// View renders the board and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	status := m.help.View(m.keys)
	if m.note != "" {
		style := noteStyle
		if m.noteWarn {
			style = warnStyle
		}
		status = style.Render(" " + m.note)
	}
	return RenderScreen(m.screen) + "\n" + status
}

// Run starts the Bubble Tea program in the alternate screen.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(NewModel(game, cfg, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

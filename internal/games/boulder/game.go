// Package boulder adapts the simulation engine to the registry.Game
// contract so the terminal and SSH front ends can drive it.
package boulder

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/boulder-daily/internal/core"
	"github.com/vovakirdan/boulder-daily/internal/daily"
	"github.com/vovakirdan/boulder-daily/internal/games/boulder/engine"
	"github.com/vovakirdan/boulder-daily/internal/registry"
)

// Mode selects how the seed is chosen when none is configured.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModePractice Mode = "practice"
)

// Registry IDs.
const (
	IDDaily    = "boulder"
	IDPractice = "boulder_practice"
)

const (
	hudHeight  = 2
	bannerTime = 2 * time.Second
)

// Game wraps one engine session per run.
type Game struct {
	mode    Mode
	cfg     core.RuntimeConfig
	seed    string
	session *engine.Session

	paused  bool
	banner  string
	bannerN int // Ticks left to show banner
	err     error
}

// New creates a daily-mode game.
func New() *Game {
	return &Game{mode: ModeDaily}
}

// NewPractice creates a practice-mode game.
func NewPractice() *Game {
	return &Game{mode: ModePractice}
}

func init() {
	registry.Register(IDDaily, func() registry.Game {
		return New()
	})
	registry.Register(IDPractice, func() registry.Game {
		return NewPractice()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return IDPractice
	}
	return IDDaily
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Boulder (Practice)"
	}
	return "Boulder Daily"
}

// Mode returns the seed selection mode.
func (g *Game) Mode() Mode { return g.mode }

// Seed returns the seed of the current run.
func (g *Game) Seed() string { return g.seed }

// Session exposes the running simulation. Nil before Reset.
func (g *Game) Session() *engine.Session { return g.session }

// Err returns the invariant violation that aborted the current run.
func (g *Game) Err() error { return g.err }

// Result returns the sealed result once the run is won or lost.
func (g *Game) Result() (engine.Result, bool) {
	if g.session == nil {
		return engine.Result{}, false
	}
	return g.session.Result()
}

// Reset starts a new run. An empty cfg.Seed picks today's seed in daily
// mode and a fresh random seed in practice mode.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = engine.TickInterval
	}
	g.cfg = cfg

	g.seed = cfg.Seed
	if g.seed == "" {
		g.seed = g.pickSeed(cfg.Clock)
	}
	g.session = engine.StartRun(g.seed, engine.WithClock(cfg.Clock))
	g.paused = false
	g.banner = ""
	g.bannerN = 0
	g.err = nil
}

func (g *Game) pickSeed(now func() time.Time) string {
	if g.mode == ModeDaily {
		return daily.SeedFor(now())
	}
	return uuid.NewString()[:8]
}

// Step advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	status := g.session.Status()

	if in.Has(core.ActionRestart) && status.Terminal() {
		cfg := g.cfg
		cfg.Seed = g.seed
		g.Reset(cfg)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !status.Terminal() {
		g.paused = !g.paused
	}
	if g.paused || status.Terminal() {
		return core.StepResult{State: g.State()}
	}

	g.session.Submit(inputFor(in.Last))
	ev, err := g.session.Tick()
	if err != nil {
		g.err = err
		return core.StepResult{State: g.State(), Finished: true}
	}

	if g.bannerN > 0 {
		g.bannerN--
	}
	finished := false
	switch ev := ev.(type) {
	case engine.Continue:
		if ev.ExitOpened {
			g.showBanner("The exit is open!")
		}
	case engine.Won, engine.Lost:
		finished = true
	}
	return core.StepResult{State: g.State(), Finished: finished}
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerN = int(bannerTime / g.cfg.TickInterval)
}

// inputFor maps a platform action to an engine input.
func inputFor(a core.Action) engine.Input {
	switch a {
	case core.ActionUp:
		return engine.InputUp
	case core.ActionDown:
		return engine.InputDown
	case core.ActionLeft:
		return engine.InputLeft
	case core.ActionRight:
		return engine.InputRight
	default:
		return engine.InputWait
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	status := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: status.Terminal(),
		Won:      status == engine.StatusWon,
		Paused:   g.paused,
	}
}

// MinScreen returns the smallest screen the game can render into.
func MinScreen() (w, h int) {
	return engine.Width + 2, engine.Height + hudHeight + 3
}

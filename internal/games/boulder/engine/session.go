package engine

import (
	"fmt"
	"time"
)

// Option configures a Session.
type Option func(*Session)

// WithClock injects the wall clock used to measure TimeMs.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogicalTime makes TimeMs equal to ticks * interval instead of elapsed
// wall time, so the result depends on the seed and inputs alone.
func WithLogicalTime(interval time.Duration) Option {
	return func(s *Session) {
		s.logical = interval
	}
}

// Snapshot is a comparable summary of a session at one point in time.
type Snapshot struct {
	Tick     uint64
	Status   Status
	Score    int
	Gems     int
	Player   Coord
	ExitOpen bool
	GridHash uint64
}

// Session owns one run: its grid, counters, input buffer and history.
// A Session is not safe for concurrent use; drive it from a single goroutine.
type Session struct {
	seed     string
	grid     *Grid
	status   Status
	tick     uint64
	score    int
	gems     int
	exitOpen bool
	pending  Input
	history  History
	result   Result
	sealed   bool
	err      error

	now     func() time.Time
	logical time.Duration
	started time.Time
	moved   []bool
}

// StartRun generates the level for seed and returns an active session.
func StartRun(seed string, opts ...Option) *Session {
	s := newSession(seed, opts)
	s.grid = Generate(seed)
	s.activate()
	return s
}

// NewSession starts a run on a caller-supplied grid. The grid is copied.
func NewSession(grid *Grid, seed string, opts ...Option) (*Session, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("engine: new session: %w", err)
	}
	s := newSession(seed, opts)
	s.grid = grid.Clone()
	for _, cell := range s.grid.Cells {
		if cell.Kind == KindExit && cell.Open {
			s.exitOpen = true
		}
	}
	s.activate()
	return s, nil
}

func newSession(seed string, opts []Option) *Session {
	s := &Session{
		seed:   seed,
		status: StatusGenerating,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) activate() {
	s.moved = make([]bool, len(s.grid.Cells))
	s.grid.DrainChanges()
	s.started = s.now()
	s.status = StatusActive
}

// Seed returns the seed the session was started with.
func (s *Session) Seed() string { return s.seed }

// Status returns the current lifecycle stage.
func (s *Session) Status() Status { return s.status }

// Ticks returns the number of ticks processed so far.
func (s *Session) Ticks() uint64 { return s.tick }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Gems returns the number of gems collected.
func (s *Session) Gems() int { return s.gems }

// ExitOpen reports whether the exit accepts the player.
func (s *Session) ExitOpen() bool { return s.exitOpen }

// Pending returns the buffered input for the next tick.
func (s *Session) Pending() Input { return s.pending }

// Err returns the invariant violation that aborted the run, if any.
func (s *Session) Err() error { return s.err }

// Grid returns the live grid. Callers must treat it as read-only.
func (s *Session) Grid() *Grid { return s.grid }

// History returns a copy of the inputs recorded so far.
func (s *Session) History() History { return s.history.Clone() }

// Submit buffers a direction for the next tick. The last write before a
// tick wins. Inputs outside the defined set are ignored.
func (s *Session) Submit(in Input) {
	if !in.Valid() || s.status != StatusActive {
		return
	}
	s.pending = in
}

// SubmitString buffers a wire-format input. Unknown strings buffer WAIT.
func (s *Session) SubmitString(raw string) {
	in, _ := ParseInput(raw)
	s.Submit(in)
}

// Abandon stops an active run without producing a result.
func (s *Session) Abandon() {
	if s.status == StatusActive {
		s.status = StatusAborted
	}
}

// Tick advances the simulation by one step. It returns a nil event once the
// run is terminal. A non-nil error means an invariant broke; the session is
// then Aborted.
func (s *Session) Tick() (Event, error) {
	if s.status != StatusActive {
		return nil, nil
	}

	s.tick++
	in := s.pending
	s.pending = InputWait
	s.history = append(s.history, HistoryEntry{Tick: s.tick, Input: in})

	won, exitOpened := s.applyCommand(in)
	crushed := false
	if !won {
		crushed = s.applyPhysics()
	}

	if err := s.grid.Validate(); err != nil {
		s.status = StatusAborted
		s.err = fmt.Errorf("engine: tick %d: %w", s.tick, err)
		return nil, s.err
	}

	delta := s.grid.DrainChanges()
	switch {
	case won:
		s.score += WinBonus
		s.seal(StatusWon)
		return Won{Result: s.result, Delta: delta}, nil
	case crushed:
		s.seal(StatusLost)
		return Lost{Result: s.result, Delta: delta}, nil
	}
	return Continue{
		Tick:       s.tick,
		Score:      s.score,
		Gems:       s.gems,
		ExitOpened: exitOpened,
		Delta:      delta,
	}, nil
}

func (s *Session) seal(status Status) {
	s.status = status
	s.result = Result{
		Score:    s.score,
		Gems:     s.gems,
		TimeMs:   s.elapsed().Milliseconds(),
		Won:      status == StatusWon,
		History:  s.history.Clone(),
		Ticks:    s.tick,
		Terminal: true,
	}
	s.sealed = true
}

func (s *Session) elapsed() time.Duration {
	if s.logical > 0 {
		return time.Duration(s.tick) * s.logical
	}
	return s.now().Sub(s.started)
}

// Result returns the sealed result. ok is false until the run is won or lost.
func (s *Session) Result() (Result, bool) {
	if !s.sealed {
		return Result{}, false
	}
	r := s.result
	r.History = r.History.Clone()
	return r, true
}

// Snapshot summarizes the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:     s.tick,
		Status:   s.status,
		Score:    s.score,
		Gems:     s.gems,
		Player:   s.grid.Player(),
		ExitOpen: s.exitOpen,
		GridHash: s.grid.Hash(),
	}
}

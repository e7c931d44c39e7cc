package engine

import (
	"errors"
	"testing"
	"time"
)

func newTestSession(t *testing.T, rows ...string) *Session {
	t.Helper()
	s, err := NewSession(MustParseLayout(rows...), "test", WithLogicalTime(TickInterval))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func step(t *testing.T, s *Session, in Input) Event {
	t.Helper()
	s.Submit(in)
	ev, err := s.Tick()
	if err != nil {
		t.Fatalf("tick %d: %v", s.Ticks(), err)
	}
	return ev
}

func TestStartRunIsActive(t *testing.T) {
	s := StartRun("daily-seed")
	if s.Status() != StatusActive {
		t.Fatalf("status = %s, want active", s.Status())
	}
	if s.Ticks() != 0 || s.Score() != 0 || s.Gems() != 0 {
		t.Fatalf("fresh session has state %+v", s.Snapshot())
	}
	if _, ok := s.Result(); ok {
		t.Fatal("fresh session has a result")
	}
}

func TestMoveIntoDirtScores(t *testing.T) {
	s := StartRun("daily-seed")
	ev := step(t, s, InputRight)

	c, ok := ev.(Continue)
	if !ok {
		t.Fatalf("event = %T, want Continue", ev)
	}
	if c.Tick != 1 || c.Score != DirtScore {
		t.Errorf("event = %+v, want tick 1 score %d", c, DirtScore)
	}
	if s.Grid().Player() != C(2, 1) {
		t.Errorf("player at %v, want (2,1)", s.Grid().Player())
	}
	if s.Grid().Kind(C(1, 1)) != KindEmpty {
		t.Errorf("vacated cell is %s", s.Grid().Kind(C(1, 1)))
	}
	want := History{{Tick: 1, Input: InputRight}}
	if h := s.History(); len(h) != 1 || h[0] != want[0] {
		t.Errorf("history = %v, want %v", h, want)
	}
}

func TestMoveIntoWallIsRecorded(t *testing.T) {
	s := newTestSession(t,
		"####",
		"#P #",
		"####",
	)
	step(t, s, InputUp)
	if s.Grid().Player() != C(1, 1) {
		t.Fatalf("player moved into a wall: %v", s.Grid().Player())
	}
	h := s.History()
	if len(h) != 1 || h[0].Input != InputUp {
		t.Fatalf("history = %v, want the attempted UP", h)
	}
}

func TestLastSubmitWins(t *testing.T) {
	s := newTestSession(t,
		"#####",
		"#   #",
		"# P #",
		"#   #",
		"#####",
	)
	s.Submit(InputUp)
	s.Submit(InputLeft)
	s.SubmitString("RIGHT")
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if s.Grid().Player() != C(3, 2) {
		t.Fatalf("player at %v, want (3,2)", s.Grid().Player())
	}
	if s.Pending() != InputWait {
		t.Fatalf("buffer not cleared: %s", s.Pending())
	}

	// The buffer resets to WAIT after each tick.
	step(t, s, InputWait)
	if h := s.History(); h[1].Input != InputWait {
		t.Fatalf("second entry = %s, want WAIT", h[1].Input)
	}
}

func TestSubmitStringUnknownIsWait(t *testing.T) {
	s := newTestSession(t,
		"####",
		"#P #",
		"####",
	)
	s.Submit(InputRight)
	s.SubmitString("JUMP")
	step(t, s, s.Pending())
	if s.Grid().Player() != C(1, 1) {
		t.Fatalf("unknown input moved the player to %v", s.Grid().Player())
	}
	if h := s.History(); h[0].Input != InputWait {
		t.Fatalf("history = %v, want WAIT", h)
	}
}

func TestPushRock(t *testing.T) {
	s := newTestSession(t,
		"######",
		"#PO  #",
		"######",
	)
	step(t, s, InputRight)
	want := []string{"######", "# PO #", "######"}
	for y, row := range s.Grid().Rows() {
		if row != want[y] {
			t.Fatalf("row %d = %q, want %q", y, row, want[y])
		}
	}
	if s.Score() != 0 {
		t.Errorf("push scored %d", s.Score())
	}
}

func TestPushRockBlocked(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		in   Input
	}{
		{"wall beyond", []string{"#####", "#PO##", "#####"}, InputRight},
		{"rock beyond", []string{"######", "#POO #", "######"}, InputRight},
		{"dirt beyond", []string{"######", "#PO. #", "######"}, InputRight},
		{"vertical", []string{"####", "# O#", "# P#", "####"}, InputUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, tt.rows...)
			before := s.Grid().Player()
			step(t, s, tt.in)
			if s.Grid().Player() != before {
				t.Fatalf("player moved from %v to %v", before, s.Grid().Player())
			}
		})
	}
}

func TestExitGatedByGems(t *testing.T) {
	s := newTestSession(t,
		"#############",
		"#P*********X#",
		"#############",
	)
	for i := 0; i < 10; i++ {
		step(t, s, InputRight)
	}
	if s.Gems() != 9 || s.ExitOpen() {
		t.Fatalf("gems = %d, open = %v", s.Gems(), s.ExitOpen())
	}
	if s.Grid().Player() != C(10, 1) {
		t.Fatalf("player entered a closed exit: %v", s.Grid().Player())
	}
	if s.Status() != StatusActive {
		t.Fatalf("status = %s", s.Status())
	}
}

func TestWinThroughOpenExit(t *testing.T) {
	s := newTestSession(t,
		"##############",
		"#P**********X#",
		"##############",
	)
	opened := 0
	for i := 0; i < 10; i++ {
		ev := step(t, s, InputRight)
		if c := ev.(Continue); c.ExitOpened {
			opened++
			if c.Tick != 10 {
				t.Errorf("exit opened on tick %d, want 10", c.Tick)
			}
		}
	}
	if opened != 1 {
		t.Fatalf("exit opened %d times", opened)
	}
	if !s.Grid().At(C(12, 1)).Open {
		t.Fatal("exit cell not marked open")
	}

	ev := step(t, s, InputRight)
	won, ok := ev.(Won)
	if !ok {
		t.Fatalf("event = %T, want Won", ev)
	}
	want := 10*GemScore + WinBonus
	if won.Result.Score != want || won.Result.Gems != 10 || !won.Result.Won {
		t.Fatalf("result = %+v, want score %d", won.Result, want)
	}
	if won.Result.Ticks != 11 || won.Result.TimeMs != 11*150 {
		t.Fatalf("ticks = %d timeMs = %d", won.Result.Ticks, won.Result.TimeMs)
	}
	if len(won.Result.History) != 11 {
		t.Fatalf("history length = %d", len(won.Result.History))
	}
	if s.Status() != StatusWon {
		t.Fatalf("status = %s", s.Status())
	}
}

func TestExitOpensOnce(t *testing.T) {
	s := newTestSession(t,
		"###############",
		"#P***********X#",
		"###############",
	)
	opened := 0
	for i := 0; i < 11; i++ {
		if c := step(t, s, InputRight).(Continue); c.ExitOpened {
			opened++
		}
	}
	if opened != 1 || s.Gems() != 11 {
		t.Fatalf("opened %d times with %d gems", opened, s.Gems())
	}
}

func TestTerminalIsFinal(t *testing.T) {
	s := newTestSession(t,
		"#####",
		"# O #",
		"#   #",
		"# P #",
		"#####",
	)
	ev := step(t, s, InputWait)
	if _, ok := ev.(Lost); !ok {
		t.Fatalf("event = %T, want Lost", ev)
	}
	r1, ok := s.Result()
	if !ok {
		t.Fatal("no result after loss")
	}

	s.Submit(InputLeft)
	ev, err := s.Tick()
	if ev != nil || err != nil {
		t.Fatalf("tick after terminal = %v, %v", ev, err)
	}
	r2, _ := s.Result()
	if s.Ticks() != 1 || len(r2.History) != len(r1.History) || r2.Score != r1.Score {
		t.Fatal("terminal session changed")
	}
}

func TestAbandon(t *testing.T) {
	s := StartRun("abc")
	step(t, s, InputDown)
	s.Abandon()
	if s.Status() != StatusAborted {
		t.Fatalf("status = %s", s.Status())
	}
	if _, ok := s.Result(); ok {
		t.Fatal("abandoned run has a result")
	}
	if ev, _ := s.Tick(); ev != nil {
		t.Fatal("abandoned run still ticks")
	}
}

func TestInvariantViolationAborts(t *testing.T) {
	s := StartRun("abc")
	// Corrupt the grid behind the session's back.
	s.grid.Cells[s.grid.index(C(5, 5))].Kind = KindPlayer

	_, err := s.Tick()
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
	if s.Status() != StatusAborted || s.Err() == nil {
		t.Fatalf("status = %s err = %v", s.Status(), s.Err())
	}
}

func TestWallClockTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	g := MustParseLayout(
		"#####",
		"# O #",
		"#   #",
		"# P #",
		"#####",
	)
	s, err := NewSession(g, "clock", WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	now = now.Add(2300 * time.Millisecond)
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	r, _ := s.Result()
	if r.TimeMs != 2300 {
		t.Fatalf("TimeMs = %d, want 2300", r.TimeMs)
	}
}

func TestScriptedRunOnGeneratedLevel(t *testing.T) {
	s := StartRun("daily-seed", WithLogicalTime(TickInterval))
	inputs := []Input{
		InputRight, InputRight, InputRight, InputDown, InputDown, InputDown,
		InputDown, InputRight, InputRight, InputUp, InputWait, InputLeft,
	}
	for _, in := range inputs {
		step(t, s, in)
	}
	snap := s.Snapshot()
	if snap.Tick != 12 || snap.Score != 25 || snap.Gems != 0 || snap.Status != StatusActive {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Player != C(4, 2) {
		t.Fatalf("player at %v, want (4,2)", snap.Player)
	}
}

func TestCrushedOnGeneratedLevel(t *testing.T) {
	s := StartRun("daily-seed", WithLogicalTime(TickInterval))
	inputs := []Input{
		InputRight, InputRight, InputRight, InputDown, InputDown, InputRight,
		InputWait, InputWait, InputDown, InputRight, InputUp, InputUp, InputDown,
	}
	var last Event
	for _, in := range inputs {
		last = step(t, s, in)
	}
	lost, ok := last.(Lost)
	if !ok {
		t.Fatalf("event = %T, want Lost", last)
	}
	if lost.Result.Score != 35 || lost.Result.Ticks != 13 || lost.Result.Won {
		t.Fatalf("result = %+v", lost.Result)
	}
	if s.Grid().Player() != C(6, 5) || s.Grid().Kind(C(6, 4)) != KindRock {
		t.Fatalf("unexpected final grid:\n%s", RenderASCII(s))
	}
}

func TestDeterminism(t *testing.T) {
	inputs := []Input{InputDown, InputDown, InputRight, InputWait, InputLeft, InputUp}
	s1 := StartRun("determinism")
	s2 := StartRun("determinism")
	for i := 0; i < 60; i++ {
		in := inputs[i%len(inputs)]
		s1.Submit(in)
		s2.Submit(in)
		s1.Tick()
		s2.Tick()
		if s1.Snapshot() != s2.Snapshot() {
			t.Fatalf("tick %d: %+v != %+v", i+1, s1.Snapshot(), s2.Snapshot())
		}
	}
}

package engine

import (
	"errors"
	"runtime"
	"sync"
	"testing"
)

var crushInputs = []Input{
	InputRight, InputRight, InputRight, InputDown, InputDown, InputRight,
	InputWait, InputWait, InputDown, InputRight, InputUp, InputUp, InputDown,
}

func TestReplayMatchesLiveRun(t *testing.T) {
	live := StartRun("daily-seed", WithLogicalTime(TickInterval))
	for _, in := range crushInputs {
		live.Submit(in)
		if _, err := live.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	want, ok := live.Result()
	if !ok {
		t.Fatal("live run did not finish")
	}

	got, err := Replay("daily-seed", want.History)
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != want.Score || got.Gems != want.Gems || got.Won != want.Won ||
		got.Ticks != want.Ticks || got.TimeMs != want.TimeMs || !got.Terminal {
		t.Fatalf("replay = %+v, live = %+v", got, want)
	}
}

func TestReplayNotFinished(t *testing.T) {
	r, err := Replay("daily-seed", HistoryFromInputs([]Input{InputRight}))
	if err != nil {
		t.Fatal(err)
	}
	if r.Terminal || r.Score != DirtScore || r.Ticks != 1 {
		t.Fatalf("result = %+v", r)
	}
}

func TestReplayTrailingEntries(t *testing.T) {
	inputs := append(append([]Input{}, crushInputs...), InputWait, InputWait)
	_, err := Replay("daily-seed", HistoryFromInputs(inputs))
	var he *HistoryError
	if !errors.As(err, &he) || he.Code != HistoryTrailing {
		t.Fatalf("err = %v, want TRAILING", err)
	}
	if he.Index != len(crushInputs) || he.Tick != uint64(len(crushInputs)) {
		t.Fatalf("error = %+v", he)
	}
}

func TestVerify(t *testing.T) {
	h := HistoryFromInputs(crushInputs)
	tests := []struct {
		name  string
		h     History
		claim Claim
		valid bool
		want  Reason
	}{
		{"honest", h, Claim{Score: 35, Gems: 0, Won: false}, true, ReasonOK},
		{"inflated score", h, Claim{Score: 9999, Gems: 0}, false, ReasonScoreMismatch},
		{"extra gems", h, Claim{Score: 35, Gems: 3}, false, ReasonGemsMismatch},
		{"claimed win", h, Claim{Score: 35, Won: true}, false, ReasonOutcomeMismatch},
		{"empty", nil, Claim{}, false, ReasonMalformed},
		{"unfinished", h[:5], Claim{Score: 15}, false, ReasonNotFinished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Verify("daily-seed", tt.h, tt.claim)
			if v.Valid != tt.valid || v.Reason != tt.want {
				t.Fatalf("verdict = %+v, want valid=%v reason=%s", v, tt.valid, tt.want)
			}
			if tt.want == ReasonMalformed && !errors.Is(v.Err, ErrMalformedHistory) {
				t.Fatalf("err = %v, want ErrMalformedHistory", v.Err)
			}
		})
	}
}

func TestReplayGridWinningRun(t *testing.T) {
	g := MustParseLayout(
		"##############",
		"#P**********X#",
		"##############",
	)
	inputs := make([]Input, 11)
	for i := range inputs {
		inputs[i] = InputRight
	}
	r, err := ReplayGrid(g, HistoryFromInputs(inputs))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Terminal || !r.Won || r.Score != 10*GemScore+WinBonus || r.TimeMs != 1650 {
		t.Fatalf("result = %+v", r)
	}
	if g.Player() != C(1, 1) {
		t.Fatal("replay mutated the caller's grid")
	}
}

func TestReplayParallelDeterminism(t *testing.T) {
	// Replays must not share state: run the same replay from many goroutines
	// and compare against a sequential baseline.
	old := runtime.GOMAXPROCS(4)
	defer runtime.GOMAXPROCS(old)

	h := HistoryFromInputs(crushInputs)
	want, err := Replay("daily-seed", h)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]Result, 32)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Replay("daily-seed", h)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if errs[i] != nil {
			t.Fatalf("replay %d: %v", i, errs[i])
		}
		if r.Score != want.Score || r.Ticks != want.Ticks || r.Won != want.Won {
			t.Fatalf("replay %d = %+v, want %+v", i, r, want)
		}
	}
}

package engine

import (
	"errors"
	"fmt"
)

// Reason explains a Verdict.
type Reason string

const (
	ReasonOK              Reason = "ok"
	ReasonMalformed       Reason = "malformed"
	ReasonNotFinished     Reason = "not_finished"
	ReasonScoreMismatch   Reason = "score_mismatch"
	ReasonGemsMismatch    Reason = "gems_mismatch"
	ReasonOutcomeMismatch Reason = "outcome_mismatch"
	ReasonAborted         Reason = "aborted"
)

// Verdict is the outcome of checking a claimed result against a replay.
// Replayed holds the authoritative result whenever the replay ran.
type Verdict struct {
	Valid    bool
	Reason   Reason
	Replayed Result
	Err      error
}

// Replay re-simulates a history on the level generated from seed. TimeMs
// is logical (ticks * TickInterval). A history that stops before the run
// ends yields a result with Terminal=false; entries past the final tick are
// malformed.
func Replay(seed string, h History) (Result, error) {
	return ReplayGrid(Generate(seed), h)
}

// ReplayGrid is Replay on a caller-supplied starting grid.
func ReplayGrid(g *Grid, h History) (Result, error) {
	if err := ValidateHistory(h, 0); err != nil {
		return Result{}, err
	}

	s, err := NewSession(g, "", WithLogicalTime(TickInterval))
	if err != nil {
		return Result{}, fmt.Errorf("engine: replay: %w", err)
	}
	for i, e := range h {
		if s.Status().Terminal() {
			return Result{}, &HistoryError{Code: HistoryTrailing, Index: i, Tick: s.Ticks()}
		}
		s.Submit(e.Input)
		if _, err := s.Tick(); err != nil {
			return Result{}, fmt.Errorf("engine: replay: %w", err)
		}
	}

	if r, ok := s.Result(); ok {
		return r, nil
	}
	return Result{
		Score:   s.Score(),
		Gems:    s.Gems(),
		TimeMs:  s.elapsed().Milliseconds(),
		History: s.History(),
		Ticks:   s.Ticks(),
	}, nil
}

// Verify replays h and compares the outcome with claim. Disagreement is a
// verdict, not an error.
func Verify(seed string, h History, claim Claim) Verdict {
	r, err := Replay(seed, h)
	if err != nil {
		if errors.Is(err, ErrMalformedHistory) {
			return Verdict{Reason: ReasonMalformed, Err: err}
		}
		return Verdict{Reason: ReasonAborted, Err: err}
	}

	v := Verdict{Replayed: r}
	switch {
	case !r.Terminal:
		v.Reason = ReasonNotFinished
	case r.Won != claim.Won:
		v.Reason = ReasonOutcomeMismatch
	case r.Score != claim.Score:
		v.Reason = ReasonScoreMismatch
	case r.Gems != claim.Gems:
		v.Reason = ReasonGemsMismatch
	default:
		v.Valid = true
		v.Reason = ReasonOK
	}
	return v
}

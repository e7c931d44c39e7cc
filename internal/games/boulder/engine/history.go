package engine

// HistoryEntry records the command attempted on one tick.
type HistoryEntry struct {
	Tick  uint64 `json:"tick"`
	Input Input  `json:"input"`
}

// History is the ordered, gapless per-tick input log of a run.
type History []HistoryEntry

// Clone returns a copy that shares no memory with h.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Inputs returns the bare input sequence.
func (h History) Inputs() []Input {
	out := make([]Input, len(h))
	for i, e := range h {
		out[i] = e.Input
	}
	return out
}

// HistoryFromInputs numbers a sequence of inputs from tick 1.
func HistoryFromInputs(inputs []Input) History {
	h := make(History, len(inputs))
	for i, in := range inputs {
		h[i] = HistoryEntry{Tick: uint64(i + 1), Input: in}
	}
	return h
}

// ValidateHistory checks that ticks run exactly 1..N with no gaps or
// duplicates and that every input is defined. maxTicks <= 0 disables the
// length cap.
func ValidateHistory(h History, maxTicks int) error {
	if len(h) == 0 {
		return &HistoryError{Code: HistoryEmpty, Index: -1}
	}
	if maxTicks > 0 && len(h) > maxTicks {
		return &HistoryError{Code: HistoryTooLong, Index: -1, Tick: uint64(maxTicks)}
	}

	for i, e := range h {
		want := uint64(i + 1)
		switch {
		case !e.Input.Valid():
			return &HistoryError{Code: HistoryBadInput, Index: i, Tick: e.Tick}
		case e.Tick < 1 || e.Tick > uint64(len(h)):
			return &HistoryError{Code: HistoryBadTick, Index: i, Tick: e.Tick}
		case e.Tick < want:
			return &HistoryError{Code: HistoryDuplicate, Index: i, Tick: e.Tick}
		case e.Tick > want:
			return &HistoryError{Code: HistoryGap, Index: i, Tick: e.Tick}
		}
	}
	return nil
}

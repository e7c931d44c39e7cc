package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant reports a corrupted grid. It is a programming error and
	// aborts the affected run.
	ErrInvariant = errors.New("engine: grid invariant violated")

	// ErrMalformedHistory reports a history that cannot be replayed at all.
	ErrMalformedHistory = errors.New("engine: malformed history")
)

// InvariantError describes a broken grid invariant.
type InvariantError struct {
	Code    string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes InvariantError match ErrInvariant.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// History error codes.
const (
	HistoryEmpty     = "EMPTY"
	HistoryTooLong   = "TOO_LONG"
	HistoryBadTick   = "BAD_TICK"
	HistoryBadInput  = "BAD_INPUT"
	HistoryGap       = "GAP"
	HistoryDuplicate = "DUPLICATE"
	HistoryTrailing  = "TRAILING"
)

// HistoryError describes why a history was rejected before or during replay.
type HistoryError struct {
	Code  string
	Index int // Offending entry index, -1 when not tied to one entry
	Tick  uint64
}

func (e *HistoryError) Error() string {
	switch e.Code {
	case HistoryEmpty:
		return "[EMPTY] history has no entries"
	case HistoryTooLong:
		return fmt.Sprintf("[TOO_LONG] history exceeds %d ticks", e.Tick)
	case HistoryBadTick:
		return fmt.Sprintf("[BAD_TICK] entry %d has out-of-range tick %d", e.Index, e.Tick)
	case HistoryBadInput:
		return fmt.Sprintf("[BAD_INPUT] entry %d has an undefined input", e.Index)
	case HistoryGap:
		return fmt.Sprintf("[GAP] entry %d jumps to tick %d", e.Index, e.Tick)
	case HistoryDuplicate:
		return fmt.Sprintf("[DUPLICATE] entry %d repeats tick %d", e.Index, e.Tick)
	case HistoryTrailing:
		return fmt.Sprintf("[TRAILING] run ended at tick %d but history continues", e.Tick)
	default:
		return fmt.Sprintf("[%s] entry %d tick %d", e.Code, e.Index, e.Tick)
	}
}

// Is makes HistoryError match ErrMalformedHistory.
func (e *HistoryError) Is(target error) bool {
	return target == ErrMalformedHistory
}

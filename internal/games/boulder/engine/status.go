package engine

// Status is the lifecycle stage of a session.
type Status uint8

const (
	StatusGenerating Status = iota
	StatusActive
	StatusWon
	StatusLost
	StatusAborted // Abandoned, or stopped on an invariant violation
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusGenerating:
		return "generating"
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further ticks will be processed.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost || s == StatusAborted
}

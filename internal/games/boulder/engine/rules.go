package engine

import "time"

// Scoring and pacing rules. They are part of the replay contract: changing
// any of them invalidates every recorded history.
const (
	GemsNeeded   = 10
	DirtScore    = 5
	GemScore     = 50
	WinBonus     = 500
	TickInterval = 150 * time.Millisecond
)

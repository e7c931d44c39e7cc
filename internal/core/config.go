package core

import "time"

// RuntimeConfig is passed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Fixed simulation period
	Seed         string        // Level seed; empty lets the game choose
	Clock        func() time.Time
}

// DefaultConfig returns a RuntimeConfig sized for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: 150 * time.Millisecond,
		Clock:        time.Now,
	}
}

// GameState is the platform-visible status of a game.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	// Finished is set on the single step that ended the run.
	Finished bool
}

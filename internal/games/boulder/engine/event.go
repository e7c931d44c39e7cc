package engine

// Event is the outcome of one tick. It is one of Continue, Won or Lost.
type Event interface {
	event()
}

// Continue is returned while the run stays active.
type Continue struct {
	Tick       uint64
	Score      int
	Gems       int
	ExitOpened bool    // The exit opened on this tick
	Delta      []Coord // Cells modified this tick
}

func (Continue) event() {}

// Won is returned once, on the tick the player enters the open exit.
type Won struct {
	Result Result
	Delta  []Coord
}

func (Won) event() {}

// Lost is returned once, on the tick a rock crushes the player.
type Lost struct {
	Result Result
	Delta  []Coord
}

func (Lost) event() {}

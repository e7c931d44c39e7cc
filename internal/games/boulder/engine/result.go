package engine

// Result is the sealed summary of a finished run. Its JSON form matches the
// submission wire shape.
type Result struct {
	Score    int     `json:"score"`
	Gems     int     `json:"gems"`
	TimeMs   int64   `json:"timeMs"`
	Won      bool    `json:"won"`
	History  History `json:"history"`
	Ticks    uint64  `json:"-"`
	Terminal bool    `json:"-"` // False for a replay that never reached Won or Lost
}

// Claim is the part of a client-submitted result that replay must reproduce.
type Claim struct {
	Score int
	Gems  int
	Won   bool
}

// Claim extracts the verifiable fields of r.
func (r Result) Claim() Claim {
	return Claim{Score: r.Score, Gems: r.Gems, Won: r.Won}
}

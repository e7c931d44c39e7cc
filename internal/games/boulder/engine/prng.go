package engine

import "unicode/utf16"

const (
	hashOffset     uint32 = 0xdeadbeef
	hashMultiplier uint32 = 2654435761

	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223

	twoTo32 = 4294967296.0
)

// PRNG is the seeded linear congruential stream that drives level generation.
// Identical seeds always yield identical sequences.
type PRNG struct {
	state uint32
}

// NewPRNG derives the initial state from a seed string.
// Any string is accepted, including the empty string.
func NewPRNG(seed string) *PRNG {
	return &PRNG{state: HashSeed(seed)}
}

// HashSeed folds the UTF-16 code units of seed into a 32-bit state and
// finishes with an xor-shift avalanche.
func HashSeed(seed string) uint32 {
	h := hashOffset
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = (h ^ uint32(unit)) * hashMultiplier
	}
	return h ^ (h >> 16)
}

// Next advances the state and returns a float in [0, 1).
func (p *PRNG) Next() float64 {
	p.state = p.state*lcgMultiplier + lcgIncrement
	return float64(p.state) / twoTo32
}

// State returns the current internal state.
func (p *PRNG) State() uint32 {
	return p.state
}

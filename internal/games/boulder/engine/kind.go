// Package engine implements the deterministic Boulder simulation:
// seeded level generation, player commands, gravity and the run history.
// It has no dependencies on rendering, timing or I/O, so a run can be
// reproduced exactly from its seed and input history.
package engine

// Kind is the type of entity occupying a grid cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindDirt
	KindWall
	KindRock
	KindGem
	KindExit
	KindPlayer
	KindEnemy
)

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "EMPTY"
	case KindDirt:
		return "DIRT"
	case KindWall:
		return "WALL"
	case KindRock:
		return "ROCK"
	case KindGem:
		return "GEM"
	case KindExit:
		return "EXIT"
	case KindPlayer:
		return "PLAYER"
	case KindEnemy:
		return "ENEMY"
	default:
		return "UNKNOWN"
	}
}

// Char returns the ASCII glyph used by layouts and debug renders.
func (k Kind) Char() rune {
	switch k {
	case KindEmpty:
		return ' '
	case KindDirt:
		return '.'
	case KindWall:
		return '#'
	case KindRock:
		return 'O'
	case KindGem:
		return '*'
	case KindExit:
		return 'X'
	case KindPlayer:
		return 'P'
	case KindEnemy:
		return 'E'
	default:
		return '?'
	}
}

// ParseKind maps a layout glyph back to a kind.
func ParseKind(r rune) (Kind, bool) {
	switch r {
	case ' ':
		return KindEmpty, true
	case '.':
		return KindDirt, true
	case '#':
		return KindWall, true
	case 'O':
		return KindRock, true
	case '*':
		return KindGem, true
	case 'X':
		return KindExit, true
	case 'P':
		return KindPlayer, true
	case 'E':
		return KindEnemy, true
	default:
		return KindEmpty, false
	}
}

// Heavy reports whether the kind is subject to gravity.
func (k Kind) Heavy() bool {
	return k == KindRock || k == KindGem
}

package engine

import (
	"fmt"
	"hash/fnv"
)

// Cell is the occupant of one grid slot. X and Y cache the slot's
// coordinate; the grid array is authoritative and Swap keeps both in sync.
type Cell struct {
	Kind    Kind
	X       int
	Y       int
	Falling bool // Rock or gem in motion at the end of the last physics pass
	Open    bool // Exit only: enough gems have been collected
}

// Grid is a fixed-size arena of cells stored in row-major order
// (index = y*W + x).
type Grid struct {
	W     int
	H     int
	Cells []Cell

	player  Coord
	touched []bool
	changes []Coord
}

// NewGrid creates a grid filled with walls.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		W:       w,
		H:       h,
		Cells:   make([]Cell, w*h),
		player:  Coord{X: -1, Y: -1},
		touched: make([]bool, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Cells[g.index(C(x, y))] = Cell{Kind: KindWall, X: x, Y: y}
		}
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds reports whether the coordinate lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the cell at c. Out-of-bounds coordinates read as a wall.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Cell{Kind: KindWall, X: c.X, Y: c.Y}
	}
	return g.Cells[g.index(c)]
}

// Kind returns the kind at c. Out-of-bounds coordinates read as a wall.
func (g *Grid) Kind(c Coord) Kind {
	return g.At(c).Kind
}

// Set places a fresh cell of the given kind at c, clearing its flags.
func (g *Grid) Set(c Coord, k Kind) {
	if !g.InBounds(c) {
		return
	}
	i := g.index(c)
	g.Cells[i] = Cell{Kind: k, X: c.X, Y: c.Y}
	if k == KindPlayer {
		g.player = c
	}
	g.touch(i)
}

// Clear empties the cell at c.
func (g *Grid) Clear(c Coord) {
	g.Set(c, KindEmpty)
}

// Swap exchanges the occupants of a and b and rewrites both cached
// coordinates. Both coordinates must be in bounds.
func (g *Grid) Swap(a, b Coord) {
	ia, ib := g.index(a), g.index(b)
	g.Cells[ia], g.Cells[ib] = g.Cells[ib], g.Cells[ia]
	g.Cells[ia].X, g.Cells[ia].Y = a.X, a.Y
	g.Cells[ib].X, g.Cells[ib].Y = b.X, b.Y

	if g.Cells[ia].Kind == KindPlayer {
		g.player = a
	}
	if g.Cells[ib].Kind == KindPlayer {
		g.player = b
	}
	g.touch(ia)
	g.touch(ib)
}

func (g *Grid) setFalling(c Coord, falling bool) {
	g.Cells[g.index(c)].Falling = falling
}

// Player returns the tracked player position.
func (g *Grid) Player() Coord {
	return g.player
}

// Count returns how many cells hold the given kind.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, cell := range g.Cells {
		if cell.Kind == k {
			n++
		}
	}
	return n
}

// Find returns the first coordinate (row-major) holding the given kind.
func (g *Grid) Find(k Kind) (Coord, bool) {
	for _, cell := range g.Cells {
		if cell.Kind == k {
			return C(cell.X, cell.Y), true
		}
	}
	return Coord{}, false
}

// OpenExits marks every exit cell as open and reports whether any changed.
func (g *Grid) OpenExits() bool {
	changed := false
	for i := range g.Cells {
		if g.Cells[i].Kind == KindExit && !g.Cells[i].Open {
			g.Cells[i].Open = true
			g.touch(i)
			changed = true
		}
	}
	return changed
}

func (g *Grid) touch(i int) {
	if g.touched[i] {
		return
	}
	g.touched[i] = true
	g.changes = append(g.changes, C(i%g.W, i/g.W))
}

// DrainChanges returns the coordinates modified since the previous call,
// in modification order, and resets the change set.
func (g *Grid) DrainChanges() []Coord {
	out := g.changes
	for _, c := range out {
		g.touched[g.index(c)] = false
	}
	g.changes = nil
	return out
}

// Clone returns a deep copy of the grid with an empty change set.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:       g.W,
		H:       g.H,
		Cells:   cells,
		player:  g.player,
		touched: make([]bool, len(g.Cells)),
	}
}

// Equal reports whether two grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-64a digest of the grid contents.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d;", g.W, g.H)
	buf := make([]byte, 0, len(g.Cells))
	for _, cell := range g.Cells {
		b := byte(cell.Kind)
		if cell.Falling {
			b |= 0x40
		}
		if cell.Open {
			b |= 0x80
		}
		buf = append(buf, b)
	}
	h.Write(buf)
	return h.Sum64()
}

// Validate checks the structural invariants: a wall border, cached
// coordinates that agree with the array, and exactly one player at the
// tracked position.
func (g *Grid) Validate() error {
	if len(g.Cells) != g.W*g.H {
		return &InvariantError{Code: "SIZE", Message: fmt.Sprintf("have %d cells for %dx%d grid", len(g.Cells), g.W, g.H)}
	}

	players := 0
	for i, cell := range g.Cells {
		x, y := i%g.W, i/g.W
		if cell.X != x || cell.Y != y {
			return &InvariantError{
				Code:    "COORD",
				Message: fmt.Sprintf("cell at %v caches %v", C(x, y), C(cell.X, cell.Y)),
			}
		}
		border := x == 0 || y == 0 || x == g.W-1 || y == g.H-1
		if border && cell.Kind != KindWall {
			return &InvariantError{
				Code:    "BORDER",
				Message: fmt.Sprintf("border cell %v is %s", C(x, y), cell.Kind),
			}
		}
		if cell.Kind == KindPlayer {
			players++
			if g.player != C(x, y) {
				return &InvariantError{
					Code:    "PLAYER",
					Message: fmt.Sprintf("player found at %v but tracked at %v", C(x, y), g.player),
				}
			}
		}
	}
	if players != 1 {
		return &InvariantError{Code: "PLAYER", Message: fmt.Sprintf("expected 1 player, found %d", players)}
	}
	return nil
}

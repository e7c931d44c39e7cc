package engine

import (
	"fmt"
	"strings"
)

// ParseLayout builds a grid from ASCII rows using the glyphs of Kind.Char.
// All rows must have the same width and the result must satisfy
// Grid.Validate. Exits in the layout start closed.
func ParseLayout(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("engine: empty layout")
	}
	w := len([]rune(rows[0]))
	g := NewGrid(w, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, fmt.Errorf("engine: layout row %d has width %d, want %d", y, len(runes), w)
		}
		for x, r := range runes {
			k, ok := ParseKind(r)
			if !ok {
				return nil, fmt.Errorf("engine: layout row %d: unknown glyph %q at column %d", y, r, x)
			}
			g.Set(C(x, y), k)
		}
	}
	g.DrainChanges()
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid layout: %w", err)
	}
	return g, nil
}

// MustParseLayout is ParseLayout for fixtures known to be valid.
func MustParseLayout(rows ...string) *Grid {
	g, err := ParseLayout(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows renders the grid back into layout rows. Open exits render as 'X'
// like closed ones; use RenderASCII to see exit state.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		sb.Reset()
		for x := 0; x < g.W; x++ {
			sb.WriteRune(g.Kind(C(x, y)).Char())
		}
		rows[y] = sb.String()
	}
	return rows
}

// RenderASCII returns a debug view of the session: a status header followed
// by the grid, with an open exit drawn as '@'.
func RenderASCII(s *Session) string {
	var sb strings.Builder
	snap := s.Snapshot()
	fmt.Fprintf(&sb, "Tick: %d | %s | Score: %d | Gems: %d/%d\n",
		snap.Tick, snap.Status, snap.Score, snap.Gems, GemsNeeded)

	g := s.grid
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			cell := g.At(C(x, y))
			if cell.Kind == KindExit && cell.Open {
				sb.WriteRune('@')
				continue
			}
			sb.WriteRune(cell.Kind.Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

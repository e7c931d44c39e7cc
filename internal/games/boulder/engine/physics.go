package engine

// applyPhysics runs one gravity sweep, bottom row first and left to right
// within a row. Each rock or gem moves at most one cell. It reports whether
// a rock crushed the player.
func (s *Session) applyPhysics() (crushed bool) {
	g := s.grid
	for i := range s.moved {
		s.moved[i] = false
	}

	for y := g.H - 2; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			i := g.index(c)
			cell := g.Cells[i]
			if s.moved[i] || !cell.Kind.Heavy() {
				continue
			}

			at := c
			dest, ok := settle(g, c)
			if ok {
				g.Swap(c, dest)
				g.setFalling(dest, true)
				s.moved[g.index(dest)] = true
				at = dest
			} else if cell.Falling {
				g.setFalling(c, false)
				g.touch(i)
			}

			if cell.Kind == KindRock && (ok || cell.Falling) && g.Kind(at.Add(0, 1)) == KindPlayer {
				crushed = true
			}
		}
	}
	return crushed
}

// settle returns where the heavy cell at c moves this sweep: straight down
// into empty space, otherwise off a rock or wall to the left, then right.
func settle(g *Grid, c Coord) (Coord, bool) {
	below := c.Add(0, 1)
	switch g.Kind(below) {
	case KindEmpty:
		return below, true
	case KindRock, KindWall:
		for _, dx := range [2]int{-1, 1} {
			side := c.Add(dx, 0)
			if g.Kind(side) == KindEmpty && g.Kind(side.Add(0, 1)) == KindEmpty {
				return side, true
			}
		}
	}
	return c, false
}

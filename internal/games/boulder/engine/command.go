package engine

// applyCommand resolves the player's move for this tick. It reports whether
// the player entered the open exit and whether the exit opened.
func (s *Session) applyCommand(in Input) (won, exitOpened bool) {
	dx, dy := in.Delta()
	if dx == 0 && dy == 0 {
		return false, false
	}

	g := s.grid
	from := g.Player()
	to := from.Add(dx, dy)
	if !g.InBounds(to) {
		return false, false
	}

	switch g.Kind(to) {
	case KindEmpty:
		s.movePlayer(from, to)
	case KindDirt:
		s.movePlayer(from, to)
		s.score += DirtScore
	case KindGem:
		s.movePlayer(from, to)
		s.score += GemScore
		s.gems++
		if s.gems >= GemsNeeded && !s.exitOpen {
			s.exitOpen = true
			g.OpenExits()
			exitOpened = true
		}
	case KindExit:
		if s.gems >= GemsNeeded {
			s.movePlayer(from, to)
			won = true
		}
	case KindRock:
		if dy != 0 {
			break
		}
		beyond := to.Add(dx, 0)
		if g.InBounds(beyond) && g.Kind(beyond) == KindEmpty {
			g.Swap(to, beyond)
			g.setFalling(beyond, false)
			s.movePlayer(from, to)
		}
	}
	return won, exitOpened
}

// movePlayer puts the player on to and leaves from empty. Whatever occupied
// to is consumed.
func (s *Session) movePlayer(from, to Coord) {
	s.grid.Swap(from, to)
	s.grid.Clear(from)
}

package boulder

import (
	"fmt"

	"github.com/vovakirdan/boulder-daily/internal/core"
	"github.com/vovakirdan/boulder-daily/internal/games/boulder/engine"
)

// glyph returns the screen rune and color for a grid cell.
func glyph(cell engine.Cell) (rune, core.Color) {
	switch cell.Kind {
	case engine.KindWall:
		return '█', core.ColorWall
	case engine.KindDirt:
		return '░', core.ColorDirt
	case engine.KindRock:
		return 'O', core.ColorRock
	case engine.KindGem:
		return '◆', core.ColorGem
	case engine.KindExit:
		if cell.Open {
			return '▣', core.ColorExitOpen
		}
		return '▢', core.ColorExit
	case engine.KindPlayer:
		return '@', core.ColorPlayer
	case engine.KindEnemy:
		return '¤', core.ColorEnemy
	default:
		return ' ', core.ColorDefault
	}
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	minW, minH := MinScreen()
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorAlert)
		return
	}

	dst.DrawTextColored(0, 0, g.hudLine(), core.ColorHUD)
	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorMuted)
	}

	grid := g.session.Grid()
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-1)
	board := area.Centered(grid.W, grid.H)
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			r, c := glyph(grid.At(engine.C(x, y)))
			dst.SetColored(board.X+x, board.Y+y, r, c)
		}
	}

	switch status := g.session.Status(); {
	case status == engine.StatusWon:
		g.renderOverlay(dst, "You escaped!", fmt.Sprintf("Score %d in %d ticks", g.session.Score(), g.session.Ticks()), "Press R to retry")
	case status == engine.StatusLost:
		g.renderOverlay(dst, "Crushed!", fmt.Sprintf("Score %d", g.session.Score()), "Press R to retry")
	case status == engine.StatusAborted:
		g.renderOverlay(dst, "Run aborted", "internal error", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "", "Press P to continue")
	case g.bannerN > 0:
		dst.DrawTextCentered(board.Bottom(), g.banner, core.ColorAccent)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := dst.Bounds().Centered(w+4, len(lines)+2)
	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorAccent)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l, core.ColorHUD)
	}
}

func (g *Game) hudLine() string {
	s := g.session
	exit := "closed"
	if s.ExitOpen() {
		exit = "open"
	}
	return fmt.Sprintf(" %s | Seed %s | Score %d | Gems %d/%d | Exit %s | Tick %d",
		g.Title(), g.seed, s.Score(), s.Gems(), engine.GemsNeeded, exit, s.Ticks())
}

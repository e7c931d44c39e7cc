package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != "      " {
			t.Errorf("row %d = %q", y, s.Row(y))
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 2, '*', ColorGem)
	if got := s.GetCell(1, 2); got.Rune != '*' || got.Color != ColorGem {
		t.Fatalf("cell = %+v", got)
	}

	// Out of bounds is ignored.
	s.SetColored(-1, 0, 'X', ColorAlert)
	s.SetColored(4, 0, 'X', ColorAlert)
	if s.GetCell(-1, 0) != blank || s.Get(9, 9) != ' ' {
		t.Fatal("out-of-bounds read returned content")
	}
}

func TestDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "gems")
	if s.Row(0) != "  gem" {
		t.Fatalf("row = %q", s.Row(0))
	}
}

func TestDrawTextCenteredUsesRunes(t *testing.T) {
	s := NewScreen(7, 1)
	s.DrawTextCentered(0, "★★★", ColorAccent)
	if s.Row(0) != "  ★★★  " {
		t.Fatalf("row = %q", s.Row(0))
	}
}

func TestDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(s.Bounds(), ColorMuted)
	want := strings.Join([]string{"┌──┐", "│  │", "└──┘"}, "\n")
	if s.String() != want {
		t.Fatalf("box =\n%s", s.String())
	}
}

func TestRectCentered(t *testing.T) {
	r := NewRect(0, 0, 80, 24).Centered(16, 12)
	if r.X != 32 || r.Y != 6 {
		t.Fatalf("centered = %+v", r)
	}
	small := NewRect(0, 0, 10, 5).Centered(16, 12)
	if small.X != 0 || small.Y != 0 {
		t.Fatalf("oversized rect not clamped: %+v", small)
	}
}

func TestInputFrameLastMovementWins(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)
	if f.Last != ActionLeft || !f.Has(ActionPause) {
		t.Fatalf("frame = %+v", f)
	}
	f.Clear()
	if f.Last != ActionNone || f.Has(ActionUp) {
		t.Fatal("clear left state behind")
	}
}

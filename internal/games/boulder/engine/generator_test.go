package engine

import (
	"strings"
	"testing"
)

var dailySeedLayout = []string{
	"################",
	"#P.. .*O. #.#..#",
	"#.#... E# ...O.#",
	"#..  .OO OO.#.*#",
	"##*.O....   #.##",
	"##..**.. . . ..#",
	"#O#....E*.  .O.#",
	"#.#...O #...O*.#",
	"#O E*O . #.... #",
	"#.. O. ........#",
	"#.  ..##.# *O.X#",
	"################",
}

func TestGenerateKnownSeed(t *testing.T) {
	g := Generate("daily-seed")
	got := g.Rows()
	for y := range dailySeedLayout {
		if got[y] != dailySeedLayout[y] {
			t.Errorf("row %d = %q, want %q", y, got[y], dailySeedLayout[y])
		}
	}
}

func TestGenerateFixedCells(t *testing.T) {
	for _, seed := range []string{"", "abc", "daily-seed", "2026-10-14"} {
		g := Generate(seed)
		if g.W != Width || g.H != Height {
			t.Fatalf("seed %q: size %dx%d", seed, g.W, g.H)
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("seed %q: %v", seed, err)
		}
		if g.Player() != SpawnPos {
			t.Errorf("seed %q: player at %v, want %v", seed, g.Player(), SpawnPos)
		}
		exit := g.At(ExitPos)
		if exit.Kind != KindExit || exit.Open {
			t.Errorf("seed %q: exit cell = %+v, want closed exit", seed, exit)
		}
		if n := g.Count(KindExit); n != 1 {
			t.Errorf("seed %q: %d exits", seed, n)
		}
	}
}

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		seed  string
		gems  int
		rocks int
		walls int
	}{
		{"", 12, 20, 69},
		{"abc", 12, 22, 65},
		{"daily-seed", 9, 15, 68},
	}
	for _, tt := range tests {
		g := Generate(tt.seed)
		if n := g.Count(KindGem); n != tt.gems {
			t.Errorf("seed %q: gems = %d, want %d", tt.seed, n, tt.gems)
		}
		if n := g.Count(KindRock); n != tt.rocks {
			t.Errorf("seed %q: rocks = %d, want %d", tt.seed, n, tt.rocks)
		}
		if n := g.Count(KindWall); n != tt.walls {
			t.Errorf("seed %q: walls = %d, want %d", tt.seed, n, tt.walls)
		}
	}
}

func TestGenerateUnwinnableLevelIsKept(t *testing.T) {
	// Fewer gems than the exit needs; generation does not patch the level.
	g := Generate("daily-seed")
	if n := g.Count(KindGem); n >= GemsNeeded {
		t.Fatalf("expected an unwinnable level, found %d gems", n)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate("repeat")
	b := Generate("repeat")
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatal("same seed produced different grids")
	}
	c := Generate("repeat!")
	if a.Equal(c) {
		t.Fatal("different seeds produced the same grid")
	}
}

func TestKindForDraw(t *testing.T) {
	tests := []struct {
		v    float64
		want Kind
	}{
		{0, KindWall},
		{0.0999, KindWall},
		{0.10, KindRock},
		{0.25, KindGem},
		{0.35, KindDirt},
		{0.7999, KindDirt},
		{0.80, KindEnemy},
		{0.82, KindEmpty},
		{0.9999, KindEmpty},
	}
	for _, tt := range tests {
		if got := KindForDraw(tt.v); got != tt.want {
			t.Errorf("KindForDraw(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestParseLayoutRoundTrip(t *testing.T) {
	g, err := ParseLayout(dailySeedLayout)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Equal(Generate("daily-seed")) {
		t.Fatal("parsed layout differs from generated grid")
	}
	if strings.Join(g.Rows(), "\n") != strings.Join(dailySeedLayout, "\n") {
		t.Fatal("Rows did not reproduce the layout")
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"####", "#P#", "####"}},
		{"glyph", []string{"####", "#P?#", "####"}},
		{"no player", []string{"####", "#  #", "####"}},
		{"two players", []string{"#####", "#PP #", "#####"}},
		{"open border", []string{"## #", "#P #", "####"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLayout(tt.rows); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

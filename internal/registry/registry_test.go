package registry

import (
	"testing"

	"github.com/vovakirdan/boulder-daily/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (stubGame) Reset(core.RuntimeConfig) {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen) {}
func (stubGame) State() core.GameState { return core.GameState{} }

func TestRegistryCreate(t *testing.T) {
	r := New()
	r.Register("b", func() Game { return stubGame{id: "b"} })
	r.Register("a", func() Game { return stubGame{id: "a"} })

	list := r.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].Title != "Stub b" {
		t.Fatalf("list = %+v", list)
	}
	g, err := r.Create("a")
	if err != nil || g.ID() != "a" {
		t.Fatalf("Create = %v, %v", g, err)
	}
	if _, err := r.Create("missing"); err == nil {
		t.Fatal("expected error for unknown game")
	}
	if !r.Exists("b") || r.Exists("c") {
		t.Fatal("Exists mismatch")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("x", func() Game { return stubGame{id: "x"} })
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration did not panic")
		}
	}()
	r.Register("x", func() Game { return stubGame{id: "x"} })
}

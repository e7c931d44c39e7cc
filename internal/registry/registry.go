// Package registry maps game IDs to factories. Game packages register in
// init(), so front ends can create games by name without importing them
// directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/boulder-daily/internal/core"
)

// Game is the contract between a simulation and a front end. Games are pure
// logic; timing, key mapping and drawing to the terminal belong to the
// platform.
type Game interface {
	// ID is the registry key, e.g. "boulder".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run. Seed selection and the clock come from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances exactly one fixed tick using the frame's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

// Registry is a set of named factories. The zero value is not usable; call
// New.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register adds a factory. It panics on a duplicate ID.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.factories[id] = f
	r.titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]GameInfo, 0, len(r.factories))
	for id := range r.factories {
		out = append(out, GameInfo{ID: id, Title: r.titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create instantiates the game registered under id.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

var defaultRegistry = New()

// Register adds a factory to the process-wide registry.
func Register(id string, f Factory) { defaultRegistry.Register(id, f) }

// List returns the games in the process-wide registry.
func List() []GameInfo { return defaultRegistry.List() }

// Create instantiates a game from the process-wide registry.
func Create(id string) (Game, error) { return defaultRegistry.Create(id) }

// Exists reports whether id is in the process-wide registry.
func Exists(id string) bool { return defaultRegistry.Exists(id) }

package tui

import (
	"sort"
	"sync"
	"time"
)

// SessionID uniquely identifies one SSH connection.
type SessionID string

// SessionInfo describes a connected player.
type SessionInfo struct {
	ID        SessionID
	User      string
	Remote    string
	Seed      string
	StartedAt time.Time
}

// SessionRegistry tracks active sessions up to a limit.
// Thread-safe for concurrent access.
type SessionRegistry struct {
	mu       sync.RWMutex
	limit    int // Zero means unlimited
	sessions map[SessionID]SessionInfo
}

// NewSessionRegistry creates a registry admitting at most limit sessions.
func NewSessionRegistry(limit int) *SessionRegistry {
	return &SessionRegistry{
		limit:    limit,
		sessions: make(map[SessionID]SessionInfo),
	}
}

// TryRegister adds a session unless the registry is full.
func (r *SessionRegistry) TryRegister(info SessionInfo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.sessions) >= r.limit {
		return false
	}
	r.sessions[info.ID] = info
	return true
}

// SetSeed records the seed a session is playing.
func (r *SessionRegistry) SetSeed(id SessionID, seed string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.sessions[id]; ok {
		info.Seed = seed
		r.sessions[id] = info
	}
}

// Unregister removes a session from the registry.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns the active sessions, oldest first.
func (r *SessionRegistry) List() []SessionInfo {
	r.mu.RLock()
	out := make([]SessionInfo, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// README: In-memory session registry with per-session serialization and TTL sweep.
package session

import (
	"context"
	"sync"
	"time"

	"voyago/internal/types"
)

// Manager owns every live conversation. Sessions share no mutable state with
// each other; concurrent requests for the same session are serialized by the
// session's turn lock.
type Manager struct {
	mu       sync.RWMutex
	sessions map[types.ID]*entry
	ttl      time.Duration
}

type entry struct {
	state *State
	turn  sync.Mutex
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{sessions: make(map[types.ID]*entry), ttl: ttl}
}

// Acquire returns the session for id, creating it when unknown or when id is
// empty, and takes the session's turn lock. The caller must call release()
// when its turn is finished. The manager's map lock is never held while a
// turn is in flight.
func (m *Manager) Acquire(id types.ID) (state *State, release func()) {
	m.mu.Lock()
	if id == "" {
		id = types.NewID()
	}
	e, ok := m.sessions[id]
	if !ok {
		e = &entry{state: newState(id)}
		m.sessions[id] = e
	}
	m.mu.Unlock()

	e.turn.Lock()
	e.state.Touch()
	return e.state, e.turn.Unlock
}

// Release drops a session, used when booking completes.
func (m *Manager) Release(id types.ID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunSweeper evicts idle sessions until ctx is cancelled.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.sessions {
		if e.state.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

package session

import (
	"sync"

	"trackplay/pkg/journey"
	"trackplay/pkg/model"
)

// Manager holds the transient in-process session state: the parsed tracks
// and the active journey. Tracks are referenced by consumers, never
// mutated; the manager owns the only mutable view (the registry itself).
type Manager struct {
	mu      sync.RWMutex
	tracks  map[string]*model.Track
	order   []string
	journey *journey.Journey
}

// NewManager creates an empty session.
func NewManager() *Manager {
	return &Manager{
		tracks: make(map[string]*model.Track),
	}
}

// Put registers a parsed track and returns its id.
func (m *Manager) Put(t *model.Track) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.tracks[t.ID]; !exists {
		m.order = append(m.order, t.ID)
	}
	m.tracks[t.ID] = t
	return t.ID
}

// Get returns the track with the given id, or nil.
func (m *Manager) Get(id string) *model.Track {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tracks[id]
}

// Remove deletes a track from the session. Returns true if it existed.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tracks[id]; !ok {
		return false
	}
	delete(m.tracks, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns the tracks in insertion order.
func (m *Manager) List() []*model.Track {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Track, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.tracks[id])
	}
	return out
}

// Count returns the number of registered tracks.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tracks)
}

// SetJourney activates a journey. Passing nil clears it.
func (m *Manager) SetJourney(j *journey.Journey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journey = j
}

// Journey returns the active journey, or nil.
func (m *Manager) Journey() *journey.Journey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.journey
}

// Reset clears all session state.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tracks = make(map[string]*model.Track)
	m.order = nil
	m.journey = nil
}

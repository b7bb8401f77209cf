package session

import (
	"sync"
	"time"
)

// Manager owns the session lookup table. Sessions are created lazily on
// first message and never deleted explicitly; an idle janitor evicts
// entries whose last activity is older than the TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a session manager with TTL-based eviction.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
}

// GetOrCreate returns the session for id, creating it on first use.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[id]; ok {
		return s
	}
	now := time.Now().UTC()
	s = &Session{
		ID:             id,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	m.sessions[id] = s
	return s
}

// Touch records activity so the janitor does not evict a live session.
func (m *Manager) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.LastActivityAt = time.Now().UTC()
	}
}

// Len reports the number of resident sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartJanitor sweeps expired sessions every interval until Close is called.
func (m *Manager) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep(time.Now().UTC())
			case <-m.stop:
				return
			}
		}
	}()
}

// Close stops the janitor goroutine.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.Sub(s.LastActivityAt) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

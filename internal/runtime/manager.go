package runtime

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/monitoring"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
)

// Session pairs a runtime with its identity. One runtime exists per active
// session; replacing the spec via Load discards prior state entirely.
type Session struct {
	ID        string    `json:"id"`
	SpecID    string    `json:"spec_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Runtime *Runtime `json:"-"`
}

// Stats contains session manager statistics.
type Stats struct {
	TotalSessions int `json:"total_sessions"`
}

// Manager orchestrates runtime session lifecycle.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session // Protected by mu
	metrics  *monitoring.Metrics
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// WithMetrics adds metrics tracking to the manager.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Open loads a spec into a fresh runtime session.
func (m *Manager) Open(spec *schema.Spec) *Session {
	session := &Session{
		ID:        uuid.New().String(),
		SpecID:    spec.ID,
		Name:      spec.Name,
		CreatedAt: time.Now(),
		Runtime:   New(spec),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	total := len(m.sessions)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RuntimesActive.Set(float64(total))
		m.metrics.RuntimesOpened.Inc()
	}

	return session
}

// Get retrieves a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	return session, ok
}

// List returns all open sessions.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// Close discards a session and its runtime state.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	total := len(m.sessions)
	m.mu.Unlock()

	if ok && m.metrics != nil {
		m.metrics.RuntimesActive.Set(float64(total))
	}

	return ok
}

// Stats returns manager statistics.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{TotalSessions: len(m.sessions)}
}

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/google/uuid"
)

// Factory builds the orchestrator of a new session.
type Factory func(ctx context.Context, sessionID string) (*Orchestrator, error)

type entry struct {
	orch     *Orchestrator
	created  time.Time
	lastSeen time.Time
}

// Manager keeps the orchestrators of concurrent sessions.
// Sessions live in memory only; stories are not persisted.
type Manager struct {
	factory Factory

	mu       sync.RWMutex
	sessions map[string]*entry

	logger   *slog.Logger
	now      func() time.Time
	onRemove []func(sessionID string)
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithManagerLogger configures a logger for the Manager.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager building sessions with factory.
func NewManager(factory Factory, opts ...ManagerOption) *Manager {
	m := &Manager{
		factory:  factory,
		sessions: make(map[string]*entry),
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session and renders its greeting.
func (m *Manager) Create(ctx context.Context) (*Orchestrator, error) {
	id := uuid.NewString()
	orch, err := m.factory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	orch.Greet()

	now := m.now()
	m.mu.Lock()
	m.sessions[id] = &entry{orch: orch, created: now, lastSeen: now}
	m.mu.Unlock()

	m.logger.Info("session created", "session_id", id)
	return orch, nil
}

// Get returns the session with the given id and marks it as seen.
func (m *Manager) Get(sessionID string) (*Orchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	e.lastSeen = m.now()
	return e.orch, nil
}

// OnRemove registers fn to be called with the id of every session removed
// by Delete or Prune. Callbacks run outside the manager lock.
func (m *Manager) OnRemove(fn func(sessionID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRemove = append(m.onRemove, fn)
}

// Delete removes a session.
func (m *Manager) Delete(sessionID string) error {
	m.mu.Lock()
	if _, ok := m.sessions[sessionID]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	delete(m.sessions, sessionID)
	hooks := m.onRemove
	m.mu.Unlock()

	m.logger.Info("session deleted", "session_id", sessionID)
	for _, fn := range hooks {
		fn(sessionID)
	}
	return nil
}

// List returns the ids of the live sessions, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune removes sessions not seen for longer than maxIdle and returns how many were removed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	var removed []string
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	hooks := m.onRemove
	m.mu.Unlock()

	if len(removed) > 0 {
		m.logger.Info("idle sessions pruned", "count", len(removed))
	}
	for _, id := range removed {
		for _, fn := range hooks {
			fn(id)
		}
	}
	return len(removed)
}

// PruneEvery runs Prune on every tick until ctx is done.
func (m *Manager) PruneEvery(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Prune(maxIdle)
		}
	}
}

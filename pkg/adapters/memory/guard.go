package memory

import (
	"context"
	"sync"

	"github.com/aretw0/adrift/pkg/ports"
)

// Guard implements ports.BusyGuard in memory.
// Safe for concurrent use.
type Guard struct {
	mu   sync.Mutex
	held map[string]uint64
	seq  uint64
}

// NewGuard creates a new in-memory guard.
func NewGuard() *Guard {
	return &Guard{
		held: make(map[string]uint64),
	}
}

// TryAcquire marks key as busy unless it is already held.
func (g *Guard) TryAcquire(ctx context.Context, key string) (ports.ReleaseFunc, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[key]; busy {
		return nil, false, nil
	}

	g.seq++
	token := g.seq
	g.held[key] = token

	return func(ctx context.Context) error {
		g.mu.Lock()
		defer g.mu.Unlock()
		// Only the holder that set the token may clear it.
		if g.held[key] == token {
			delete(g.held, key)
		}
		return nil
	}, true, nil
}

// Busy reports whether key is held.
func (g *Guard) Busy(ctx context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[key]
	return busy, nil
}

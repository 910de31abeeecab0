package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/adrift/internal/testutils"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factory(surfaces map[string]*testutils.Surface, mu *sync.Mutex) session.Factory {
	return func(ctx context.Context, id string) (*session.Orchestrator, error) {
		s := testutils.NewSurface()
		mu.Lock()
		surfaces[id] = s
		mu.Unlock()
		return session.New(testutils.NewCompleter(), s, session.WithID(id))
	}
}

func TestManager_CreateGreets(t *testing.T) {
	var mu sync.Mutex
	surfaces := map[string]*testutils.Surface{}
	m := session.NewManager(factory(surfaces, &mu))

	orch, err := m.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, orch.ID())
	assert.Contains(t, surfaces[orch.ID()].LastLine(), "Greetings wanderer")

	got, err := m.Get(orch.ID())
	require.NoError(t, err)
	assert.Same(t, orch, got)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	var mu sync.Mutex
	m := session.NewManager(factory(map[string]*testutils.Surface{}, &mu))
	ctx := context.Background()

	a, err := m.Create(ctx)
	require.NoError(t, err)
	b, err := m.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.Handle(ctx, "adrift"))
	assert.Equal(t, domain.PhaseMenu, a.Status(ctx).Phase)
	assert.Equal(t, domain.PhaseGreeting, b.Status(ctx).Phase)

	assert.ElementsMatch(t, []string{a.ID(), b.ID()}, m.List())
	assert.Equal(t, 2, m.Len())
}

func TestManager_Delete(t *testing.T) {
	var mu sync.Mutex
	m := session.NewManager(factory(map[string]*testutils.Surface{}, &mu))

	orch, err := m.Create(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Delete(orch.ID()))

	_, err = m.Get(orch.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(orch.ID()), domain.ErrSessionNotFound)
}

func TestManager_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	m := session.NewManager(func(ctx context.Context, id string) (*session.Orchestrator, error) {
		return nil, boom
	})

	_, err := m.Create(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, m.Len())
}

func TestManager_Prune(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := session.NewManager(factory(map[string]*testutils.Surface{}, &mu), session.WithClock(clock))

	stale, err := m.Create(context.Background())
	require.NoError(t, err)
	now = now.Add(20 * time.Minute)
	fresh, err := m.Create(context.Background())
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, m.Prune(30*time.Minute))

	_, err = m.Get(stale.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = m.Get(fresh.ID())
	assert.NoError(t, err)
}

func TestManager_OnRemove(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := session.NewManager(factory(map[string]*testutils.Surface{}, &mu),
		session.WithClock(func() time.Time { return now }))

	var removed []string
	var lens []int
	m.OnRemove(func(id string) {
		// Callbacks may call back into the manager.
		lens = append(lens, m.Len())
		removed = append(removed, id)
	})

	deleted, err := m.Create(context.Background())
	require.NoError(t, err)
	idle, err := m.Create(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.Delete(deleted.ID()))
	assert.Equal(t, []string{deleted.ID()}, removed)

	require.Error(t, m.Delete(deleted.ID()))
	assert.Len(t, removed, 1, "unknown sessions are not reported")

	now = now.Add(time.Hour)
	m.OnRemove(func(string) {})
	assert.Equal(t, 1, m.Prune(30*time.Minute))
	assert.Equal(t, []string{deleted.ID(), idle.ID()}, removed)
	assert.Equal(t, []int{1, 0}, lens)
}

func TestManager_PruneEveryStops(t *testing.T) {
	var mu sync.Mutex
	m := session.NewManager(factory(map[string]*testutils.Surface{}, &mu))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.PruneEvery(ctx, time.Millisecond, time.Hour) }()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("PruneEvery did not stop")
	}
}

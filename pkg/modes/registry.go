package modes

import (
	"fmt"
	"sync"

	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/ports"
)

// Registry manages the modes of one session, in menu order.
type Registry struct {
	mu    sync.RWMutex
	order []Mode
	byKey map[string]Mode
	byID  map[string]Mode
}

// NewRegistry creates a registry holding fresh Wander, Evaluate and Adventure modes.
// Modes keep per-session state, so every session needs its own registry.
func NewRegistry(deps Deps) (*Registry, error) {
	themes := deps.Themes
	if themes == nil {
		var err error
		if themes, err = DefaultThemes(); err != nil {
			return nil, err
		}
	} else if err := validateThemes(themes); err != nil {
		return nil, err
	}

	r := NewEmptyRegistry()
	for _, m := range []Mode{
		NewWander(deps),
		NewEvaluate(deps),
		NewAdventure(deps, themes),
	} {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewEmptyRegistry creates a registry without modes.
func NewEmptyRegistry() *Registry {
	return &Registry{
		byKey: make(map[string]Mode),
		byID:  make(map[string]Mode),
	}
}

// Register appends a mode to the menu.
// Returns an error if its id or menu key is already taken.
func (r *Registry) Register(m Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := m.Entry().Key
	if _, ok := r.byKey[key]; ok {
		return fmt.Errorf("menu key %q already registered", key)
	}
	if _, ok := r.byID[m.ID()]; ok {
		return fmt.Errorf("mode %q already registered", m.ID())
	}
	r.order = append(r.order, m)
	r.byKey[key] = m
	r.byID[m.ID()] = m
	return nil
}

// ByKey looks up a mode by its menu key.
func (r *Registry) ByKey(key string) (Mode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byKey[key]
	return m, ok
}

// Get looks up a mode by id.
func (r *Registry) Get(id string) (Mode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMode, id)
	}
	return m, nil
}

// Menu returns the menu entries in registration order.
func (r *Registry) Menu() []ports.MenuOption {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.MenuOption, len(r.order))
	for i, m := range r.order {
		out[i] = m.Entry()
	}
	return out
}

package platforms

import (
	"fmt"
	"sync"

	"github.com/kart-io/metahub/core"
)

// Registry holds the adapter table the router dispatches against. It is
// populated once at startup and read-only during dispatch, so lookups take
// only the read lock.
type Registry struct {
	adapters map[core.Platform]Adapter
	mutex    sync.RWMutex
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[core.Platform]Adapter),
	}
}

// Register adds an adapter. Registering the same platform twice is a
// startup wiring bug and fails loudly.
func (r *Registry) Register(adapter Adapter) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := adapter.Name()
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("platform %s already registered", name)
	}

	r.adapters[name] = adapter
	return nil
}

// Get returns the adapter for platform, or false when none is configured
func (r *Registry) Get(platform core.Platform) (Adapter, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	adapter, exists := r.adapters[platform]
	return adapter, exists
}

// Platforms returns the registered platform names in canonical order
func (r *Registry) Platforms() []core.Platform {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var names []core.Platform
	for _, p := range core.Platforms() {
		if _, ok := r.adapters[p]; ok {
			names = append(names, p)
		}
	}
	return names
}

// Len returns the number of registered adapters
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.adapters)
}

package toast

import "sync"

// DefaultContainerID is the synthetic key under which an unidentified
// surface registers.
const DefaultContainerID = "default"

// Registry maps surface identifiers to their handles and tracks the
// most recently registered surface as the implicit default target.
//
// Re-registering an identifier overwrites the previous handle
// (last-write-wins) and marks it latest again.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
	order    []string // registration order; last element is "latest"
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

// Register inserts the surface under its identifier, or under
// DefaultContainerID when the surface is unidentified, and marks it as
// the latest surface.
func (r *Registry) Register(s Surface) {
	if s == nil {
		return
	}
	key := s.ID()
	if key == "" {
		key = DefaultContainerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.surfaces[key]; exists {
		r.removeFromOrderLocked(key)
	}
	r.surfaces[key] = s
	r.order = append(r.order, key)
}

// Unregister removes the entry for the given identifier. Unknown
// identifiers are ignored.
func (r *Registry) Unregister(id string) {
	if id == "" {
		id = DefaultContainerID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.surfaces[id]; !exists {
		return
	}
	delete(r.surfaces, id)
	r.removeFromOrderLocked(id)
}

// UnregisterAll clears the entire registry. Used for teardown-all.
func (r *Registry) UnregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces = make(map[string]Surface)
	r.order = nil
}

// Lookup returns the surface for the given identifier, the latest
// surface when the identifier is empty, or nil when the registry is
// empty or the identifier is unknown.
func (r *Registry) Lookup(id string) Surface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id == "" {
		if len(r.order) == 0 {
			return nil
		}
		return r.surfaces[r.order[len(r.order)-1]]
	}
	return r.surfaces[id]
}

// IsEmpty reports whether no surface is registered.
func (r *Registry) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.surfaces) == 0
}

// Count returns the number of registered surfaces.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.surfaces)
}

// ForEach iterates over the registered surfaces in registration order.
// Return false from fn to stop early. The callback must not mutate the
// registry.
func (r *Registry) ForEach(fn func(Surface) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.order {
		if !fn(r.surfaces[key]) {
			return
		}
	}
}

// removeFromOrderLocked drops id from the registration order slice.
func (r *Registry) removeFromOrderLocked(id string) {
	for i, key := range r.order {
		if key == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

package grants

import (
	"errors"
	"sort"
	"sync"

	can "github.com/VeselinReljic/go-can"
)

// Registry maps stable check names to predicates. It is populated during
// initialization, frozen, and then shared read-only across builders and
// decoders.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]can.CheckFunc
	frozen bool
}

// NewRegistry creates an empty check [Registry].
func NewRegistry() *Registry {
	return &Registry{
		checks: make(map[string]can.CheckFunc),
	}
}

// Register associates a predicate with the given check name. Must be called
// before [Registry.Freeze].
func (r *Registry) Register(name string, fn can.CheckFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.New("registry frozen")
	}

	if name == "" {
		return errors.New("check name cannot be empty")
	}

	if fn == nil {
		return errors.New("check predicate cannot be nil")
	}

	if _, exists := r.checks[name]; exists {
		return errors.New("check already registered")
	}

	r.checks[name] = fn
	return nil
}

// Get returns the predicate for the named check, or false if not registered.
func (r *Registry) Get(name string) (can.CheckFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.checks[name]
	return fn, ok
}

// Names returns the registered check names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Freeze prevents further registrations. Must be called before the registry
// is shared with builders or decoders.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Count returns the number of registered checks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checks)
}

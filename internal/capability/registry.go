package capability

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Registry is a read-mostly store of capabilities shared by all executions.
// Registration happens during composition; lookups happen concurrently from
// every in-flight execution.
type Registry struct {
	mu     sync.RWMutex
	caps   map[string]Capability
	order  []string
	logger *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		caps:   make(map[string]Capability),
		logger: logger.With("system", "capabilities"),
	}
}

// Register adds a capability. Returns an error if the id is already taken.
func (r *Registry) Register(c Capability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := c.ID()
	if _, exists := r.caps[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCapability, id)
	}

	r.caps[id] = c
	r.order = append(r.order, id)
	r.logger.Debug("capability registered", "id", id, "enabled", c.Enabled())
	return nil
}

// Get returns the capability with the given id, or false if unregistered.
func (r *Registry) Get(id string) (Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.caps[id]
	return c, ok
}

// IDs returns all registered capability ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

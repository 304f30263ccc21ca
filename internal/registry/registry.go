package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/shadegrid/internal/spec"
)

// Module is the interface builtin catalog packages implement to contribute
// their node specs to a registry.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node specs known to a single application instance,
// keyed by type id.
type Registry struct {
	specs map[string]*spec.NodeSpec
	// order remembers registration order for deterministic enumeration.
	order []string
}

// New creates and initializes a new, empty Registry.
func New() *Registry {
	return &Registry{
		specs: make(map[string]*spec.NodeSpec),
	}
}

// Register adds a node spec to the registry. It panics on a duplicate type
// id or an invalid spec; both are catalog authoring bugs, not runtime
// conditions.
func (r *Registry) Register(s *spec.NodeSpec) {
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("invalid node spec: %v", err))
	}
	if _, exists := r.specs[s.Type]; exists {
		panic(fmt.Sprintf("node spec with type id '%s' already registered", s.Type))
	}
	slog.Debug("Registering node spec.", "type", s.Type, "category", s.Category)
	r.specs[s.Type] = s
	r.order = append(r.order, s.Type)
}

// Lookup resolves a type id to its spec.
func (r *Registry) Lookup(typeID string) (*spec.NodeSpec, bool) {
	s, ok := r.specs[typeID]
	return s, ok
}

// Types returns all registered type ids in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered specs.
func (r *Registry) Len() int { return len(r.specs) }

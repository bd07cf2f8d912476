package thing

import (
	"fmt"
	"sort"

	"github.com/comrob/build123things/pkg/kernel"
)

// Constructor builds a fresh instance of a Thing family from a full
// parameter map. Families register one of these so that callers which
// only hold a name, such as a command line or a script, can build them.
type Constructor func(k kernel.Kernel, params map[string]float64) (Thing, error)

// Registry maps family names to constructors.
type Registry struct {
	byName map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Constructor{}}
}

// Register adds a family under name. Registering the same name twice is
// an error.
func (r *Registry) Register(name string, c Constructor) error {
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("registry: family %q already registered", name)
	}
	r.byName[name] = c
	return nil
}

// New constructs a registered family by name.
func (r *Registry) New(k kernel.Kernel, name string, params map[string]float64) (Thing, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, &UnresolvedReferenceError{Thing: "registry", Kind: "family", Name: name}
	}
	return c(k, params)
}

// Has reports whether a family is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Clear removes every registered family.
func (r *Registry) Clear() {
	r.byName = map[string]Constructor{}
}

// Names lists the registered families in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

package registry

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/specialistvlad/plugbuild/internal/plugin"
)

// Module is the interface that all component packages must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the descriptors of every buildable component for a single
// application instance.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*plugin.Descriptor
	ordered []*plugin.Descriptor
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		byName: make(map[string]*plugin.Descriptor),
	}
}

// Register adds a descriptor under its element name and aliases. Names are
// matched case-insensitively. A name already taken by another descriptor is
// an error, and nothing is registered in that case.
func (r *Registry) Register(d *plugin.Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	names := append([]string{d.Name}, d.Aliases...)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		if owner, exists := r.byName[strings.ToLower(name)]; exists {
			return fmt.Errorf("component name %q is already registered by %q", name, owner.Name)
		}
	}
	for _, name := range names {
		r.byName[strings.ToLower(name)] = d
	}
	r.ordered = append(r.ordered, d)

	// Resolve the construction strategies now, so concurrent builds only read
	// the cached result.
	ep := d.EntryPoints()
	slog.Debug("Registering component.", "element", d.Name, "aliases", d.Aliases, "strategies", ep.Strategies())
	return nil
}

// MustRegister is like Register but panics on error. Modules use it, as a
// name clash between compiled-in components is a programming error.
func (r *Registry) MustRegister(d *plugin.Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup finds a descriptor by element name or alias.
func (r *Registry) Lookup(name string) (*plugin.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[strings.ToLower(name)]
	return d, ok
}

// Descriptors returns the registered descriptors in registration order.
func (r *Registry) Descriptors() []*plugin.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*plugin.Descriptor(nil), r.ordered...)
}

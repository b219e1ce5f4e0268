// Package env_vars provides a snapshot of process environment variables as a
// buildable component.
package env_vars

import (
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Environ replaces os.Environ.
	Environ func() []string
}

// Snapshot holds the environment variables matching a prefix, as they were
// when the component was built.
type Snapshot struct {
	Prefix string
	Vars   map[string]string
}

// Get returns a variable by its full name.
func (s *Snapshot) Get(key string) (string, bool) {
	v, ok := s.Vars[key]
	return v, ok
}

// Keys returns the captured variable names, sorted.
func (s *Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.Vars))
	for k := range s.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewSnapshot captures the variables of environ starting with prefix. With
// trimPrefix the prefix is removed from the captured names.
func NewSnapshot(environ []string, prefix string, trimPrefix bool) *Snapshot {
	vars := make(map[string]string)
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		if trimPrefix {
			k = strings.TrimPrefix(k, prefix)
		}
		vars[k] = v
	}
	return &Snapshot{Prefix: prefix, Vars: vars}
}

// Register registers the env_vars component.
func (m *Module) Register(r *registry.Registry) {
	environ := m.Environ
	if environ == nil {
		environ = os.Environ
	}
	r.MustRegister(&plugin.Descriptor{
		Name: "env_vars",
		Type: reflect.TypeFor[*Snapshot](),
		Factory: &plugin.Factory{
			Params: []plugin.InputSpec{
				plugin.Param[string](plugin.Attr("prefix")),
				plugin.Param[bool](plugin.Attr("trim_prefix")),
			},
			Fn: func(args []any) (any, error) {
				return NewSnapshot(environ(), plugin.Arg[string](args, 0), plugin.Arg[bool](args, 1)), nil
			},
		},
	})
}

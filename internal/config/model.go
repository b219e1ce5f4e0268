package config

import (
	"maps"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/substitute"
)

// Model is the unified representation of a loaded configuration: the
// properties available for substitution and the top-level component nodes.
type Model struct {
	Properties map[string]string
	Components []*node.Node
	// Files holds parsed sources by filename, for rendering diagnostics with
	// source snippets. Loaders without HCL sources leave it empty.
	Files map[string]*hcl.File
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		Properties: make(map[string]string),
		Files:      make(map[string]*hcl.File),
	}
}

// Merge appends other's components to m. Properties from other override
// properties already present in m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	maps.Copy(m.Properties, other.Properties)
	maps.Copy(m.Files, other.Files)
	m.Components = append(m.Components, other.Components...)
}

// Configuration is the set of services available to components while they
// are built. It is read-only once created.
type Configuration struct {
	name  string
	subst *substitute.Substitutor
}

// NewConfiguration creates the configuration services for a loaded model.
func NewConfiguration(name string, props map[string]string, opts ...substitute.Option) *Configuration {
	copied := maps.Clone(props)
	if copied == nil {
		copied = make(map[string]string)
	}
	return &Configuration{
		name:  name,
		subst: substitute.New(copied, opts...),
	}
}

// Name returns the configuration name.
func (c *Configuration) Name() string {
	return c.name
}

// Substitutor returns the string substitution service.
func (c *Configuration) Substitutor() *substitute.Substitutor {
	return c.subst
}

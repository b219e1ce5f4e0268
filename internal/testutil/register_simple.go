package testutil

import (
	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
)

// SimpleModule is a test helper that registers the given descriptors.
type SimpleModule struct {
	Descriptors []*plugin.Descriptor
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for _, d := range m.Descriptors {
		r.MustRegister(d)
	}
}

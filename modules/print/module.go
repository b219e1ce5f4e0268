package print

import (
	"io"

	"github.com/specialistvlad/plugbuild/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Streams overrides the stdout and stderr console targets.
	Streams map[string]io.Writer
}

// Register registers the console and layout components.
func (m *Module) Register(r *registry.Registry) {
	streams := m.Streams
	if streams == nil {
		streams = defaultStreams()
	}
	r.MustRegister(consoleDescriptor(streams))
	r.MustRegister(layoutDescriptor())
}

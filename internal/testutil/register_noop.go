package testutil

import (
	"reflect"

	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
)

// NoOp is the instance built by the noop component.
type NoOp struct {
	Name string
}

// NoOpModule registers a "noop" component that takes an optional name and
// builds a *NoOp.
type NoOpModule struct{}

// Register implements the registry.Module interface.
func (m *NoOpModule) Register(r *registry.Registry) {
	r.MustRegister(&plugin.Descriptor{
		Name: "noop",
		Type: reflect.TypeFor[*NoOp](),
		Factory: &plugin.Factory{
			Params: []plugin.InputSpec{plugin.Param[string](plugin.Attr("name"))},
			Fn: func(args []any) (any, error) {
				return &NoOp{Name: plugin.Arg[string](args, 0)}, nil
			},
		},
	})
}

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/handlers"
	"github.com/specialistvlad/plugbuild/internal/plugin"
)

// Validate checks every registered component against the conversion
// handlers: each input kind must have a handler, and attribute and value
// inputs must have a target type a string can be converted to.
//
// Builder inputs are discovered by creating one builder per component.
func (r *Registry) Validate(ctx context.Context, h *handlers.Handlers) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, d := range r.Descriptors() {
		ep := d.EntryPoints()
		if len(ep.Strategies()) == 0 {
			logger.Warn("Component has no way to be built.", "element", d.Name)
		}

		if ep.NewBuilder != nil {
			inputs, err := builderInputs(ep.NewBuilder)
			if err != nil {
				errs = append(errs, fmt.Sprintf("component '%s': %v", d.Name, err))
			} else {
				if err := plugin.CheckInputs(inputs); err != nil {
					errs = append(errs, fmt.Sprintf("component '%s' builder: %v", d.Name, err))
				}
				errs = append(errs, checkInputs(d.Name, "builder", inputs, h)...)
			}
		}
		if ep.Factory != nil {
			errs = append(errs, checkInputs(d.Name, "factory", ep.Factory.Params, h)...)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func builderInputs(newBuilder func() plugin.Builder) (inputs []plugin.InputSpec, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("builder factory panicked: %v", rec)
		}
	}()
	b := newBuilder()
	if b == nil {
		return nil, fmt.Errorf("builder factory returned nil")
	}
	return b.Inputs(), nil
}

func checkInputs(component, path string, inputs []plugin.InputSpec, h *handlers.Handlers) []string {
	var errs []string
	for _, in := range inputs {
		if _, ok := h.Lookup(in.Kind); !ok {
			errs = append(errs, fmt.Sprintf("component '%s' %s, input '%s': no handler for kind '%s'", component, path, in.Name, in.Kind))
			continue
		}
		if in.Kind != plugin.KindAttribute && in.Kind != plugin.KindValue {
			continue
		}
		if !handlers.Convertible(in.Type) {
			errs = append(errs, fmt.Sprintf("component '%s' %s, input '%s': a string cannot be converted to %s", component, path, in.Name, in.Type))
		}
	}
	return errs
}

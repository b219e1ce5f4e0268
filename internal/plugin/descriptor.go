// SPDX-License-Identifier: MIT
package plugin

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Builder is an intermediate object with settable inputs and a finalize
// operation.
type Builder interface {
	// Inputs lists the builder's inputs, each bound to a field with Field.
	Inputs() []InputSpec
	// Build produces the component instance.
	Build() (any, error)
}

// Factory constructs a component directly from positional arguments.
type Factory struct {
	// Params are bound in order; args[i] corresponds to Params[i].
	Params []InputSpec
	Fn     func(args []any) (any, error)
}

// Descriptor describes a buildable component type.
type Descriptor struct {
	// Name is the element name used in configuration.
	Name string
	// Aliases are alternate element names.
	Aliases []string
	// Type is the identity of the produced type. Used for diagnostics.
	Type reflect.Type
	// DeferChildren disables unused-child checks and child pre-building:
	// the component consumes its children itself.
	DeferChildren bool

	NewBuilder func() Builder
	Factory    *Factory

	resolveOnce sync.Once
	entryPoints EntryPoints
}

// TypeName returns a readable name of the produced type.
func (d *Descriptor) TypeName() string {
	if d.Type != nil {
		return d.Type.String()
	}
	return d.Name
}

// EntryPoints returns the resolved construction strategies. Resolution runs
// once per descriptor; later calls return the cached result.
func (d *Descriptor) EntryPoints() EntryPoints {
	d.resolveOnce.Do(func() {
		d.entryPoints = resolve(d)
	})
	return d.entryPoints
}

// Validate checks the parts of the descriptor that can be checked without
// constructing anything.
func (d *Descriptor) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("descriptor has no element name"))
	}
	if d.Factory != nil {
		if d.Factory.Fn == nil {
			errs = append(errs, fmt.Errorf("component %q: factory has no function", d.Name))
		}
		if err := CheckInputs(d.Factory.Params); err != nil {
			errs = append(errs, fmt.Errorf("component %q factory: %w", d.Name, err))
		}
	}
	return errors.Join(errs...)
}

// CheckInputs rejects input lists where two inputs of the same kind answer to
// the same name, which would make name matching ambiguous.
func CheckInputs(specs []InputSpec) error {
	seen := make(map[string]string)
	var errs []error
	for _, spec := range specs {
		if spec.Kind == KindNode || spec.Kind == KindConfiguration {
			continue
		}
		for _, name := range spec.Names() {
			key := string(spec.Kind) + "/" + strings.ToLower(name)
			if owner, dup := seen[key]; dup && owner != spec.Name {
				errs = append(errs, fmt.Errorf("inputs %q and %q both answer to %s %q", owner, spec.Name, spec.Kind, name))
				continue
			}
			seen[key] = spec.Name
		}
	}
	return errors.Join(errs...)
}

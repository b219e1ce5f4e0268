// SPDX-License-Identifier: MIT
package plugin

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind tags an input with the conversion handler responsible for resolving it.
type Kind string

const (
	// KindAttribute resolves a node attribute into a typed value.
	KindAttribute Kind = "attribute"
	// KindElement resolves one or more already-built child nodes.
	KindElement Kind = "element"
	// KindValue resolves the node's text value.
	KindValue Kind = "value"
	// KindNode passes the raw configuration node through.
	KindNode Kind = "node"
	// KindConfiguration passes the configuration services through.
	KindConfiguration Kind = "configuration"
)

// InputSpec describes one input of a construction path: a builder field or a
// factory parameter.
type InputSpec struct {
	// Name is the primary name matched against the configuration.
	Name string
	// Kind selects the conversion handler.
	Kind Kind
	// Aliases are alternate names, consulted in order before Name.
	Aliases []string
	// Default is used when the configuration does not provide a value. It is
	// subject to the same substitution as configured values.
	Default string
	// Required makes a missing value a binding error.
	Required bool
	// Sensitive keeps the resolved value out of the logs.
	Sensitive bool
	// Type is the conversion target.
	Type reflect.Type

	assign func(v any) error
}

// Attr declares an attribute input.
func Attr(name string) InputSpec {
	return InputSpec{Name: name, Kind: KindAttribute}
}

// Element declares a child element input.
func Element(name string) InputSpec {
	return InputSpec{Name: name, Kind: KindElement}
}

// Value declares an input fed by the node's text value.
func Value() InputSpec {
	return InputSpec{Name: "value", Kind: KindValue}
}

// Node declares an input receiving the configuration node itself.
func Node() InputSpec {
	return InputSpec{Name: "node", Kind: KindNode}
}

// Configuration declares an input receiving the configuration services.
func Configuration() InputSpec {
	return InputSpec{Name: "configuration", Kind: KindConfiguration}
}

// WithAliases returns a copy of the spec answering to the given aliases too.
func (s InputSpec) WithAliases(aliases ...string) InputSpec {
	s.Aliases = append(append([]string(nil), s.Aliases...), aliases...)
	return s
}

// WithDefault returns a copy of the spec with a default value.
func (s InputSpec) WithDefault(value string) InputSpec {
	s.Default = value
	return s
}

// AsRequired returns a copy of the spec that must be provided.
func (s InputSpec) AsRequired() InputSpec {
	s.Required = true
	return s
}

// AsSensitive returns a copy of the spec whose value is never logged.
func (s InputSpec) AsSensitive() InputSpec {
	s.Sensitive = true
	return s
}

// Names returns every name the input answers to, aliases first, in the order
// they must be tried.
func (s InputSpec) Names() []string {
	names := make([]string, 0, len(s.Aliases)+1)
	names = append(names, s.Aliases...)
	if s.Name != "" {
		names = append(names, s.Name)
	}
	return names
}

// Matches reports whether name is the primary name or one of the aliases,
// ignoring case.
func (s InputSpec) Matches(name string) bool {
	for _, n := range s.Names() {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Assign stores a resolved value into the field the spec was bound to with
// Field. A nil value resets the field to its zero value.
func (s InputSpec) Assign(v any) error {
	if s.assign == nil {
		return fmt.Errorf("input %q is not bound to a field", s.Name)
	}
	return s.assign(v)
}

// Field binds spec to dst: the spec's conversion target becomes T and Assign
// writes into dst.
func Field[T any](dst *T, spec InputSpec) InputSpec {
	name := spec.Name
	spec.Type = reflect.TypeFor[T]()
	spec.assign = func(v any) error {
		if v == nil {
			var zero T
			*dst = zero
			return nil
		}
		typed, ok := v.(T)
		if !ok {
			return fmt.Errorf("input %q: cannot assign %T to %s", name, v, reflect.TypeFor[T]())
		}
		*dst = typed
		return nil
	}
	return spec
}

// Param sets the conversion target of a factory parameter to T.
func Param[T any](spec InputSpec) InputSpec {
	spec.Type = reflect.TypeFor[T]()
	return spec
}

// Arg returns the factory argument at position i as T, or T's zero value
// when the argument was left unbound. Bound arguments are checked against
// their Param type before the factory runs.
func Arg[T any](args []any, i int) T {
	var zero T
	if i < 0 || i >= len(args) || args[i] == nil {
		return zero
	}
	typed, ok := args[i].(T)
	if !ok {
		return zero
	}
	return typed
}

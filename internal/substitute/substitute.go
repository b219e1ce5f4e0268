// Package substitute resolves ${...} references in configuration strings.
//
// Strings are parsed as HCL templates, so the full template syntax is
// available, with three variable scopes:
//
//	${props.name}   a configuration property
//	${env.NAME}     a process environment variable, captured at construction
//	${event.field}  a field of the runtime event passed to Replace
//
// Names that are not valid identifiers can be indexed: ${props["app.name"]}.
// A literal "${" is written as "$${" and a literal "%{" as "%%{".
package substitute

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Event carries the runtime context available to ${event.*} references.
type Event map[string]string

// Substitutor replaces references in strings. It is immutable after
// construction and safe for concurrent use.
type Substitutor struct {
	props cty.Value
	env   cty.Value
}

// Option configures a Substitutor.
type Option func(*options)

type options struct {
	environ func() []string
}

// WithEnviron replaces os.Environ as the source of ${env.*} variables.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithoutEnviron disables ${env.*} variables.
func WithoutEnviron() Option {
	return func(o *options) {
		o.environ = func() []string { return nil }
	}
}

// New creates a Substitutor over the given properties.
func New(props map[string]string, opts ...Option) *Substitutor {
	o := &options{environ: os.Environ}
	for _, opt := range opts {
		opt(o)
	}

	env := make(map[string]string)
	for _, kv := range o.environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return &Substitutor{
		props: objectOf(props),
		env:   objectOf(env),
	}
}

// Replace resolves every reference in text. Text without "${" or "%{" is
// returned unchanged without being parsed.
func (s *Substitutor) Replace(event Event, text string) (string, error) {
	if !strings.Contains(text, "${") && !strings.Contains(text, "%{") {
		return text, nil
	}

	expr, diags := hclsyntax.ParseTemplate([]byte(text), "<substitution>", hcl.InitialPos)
	if diags.HasErrors() {
		return "", fmt.Errorf("invalid substitution in %q: %w", text, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"props": s.props,
			"env":   s.env,
			"event": objectOf(event),
		},
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to substitute %q: %w", text, diags)
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("substitution in %q produced an unknown value", text)
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("substitution in %q did not produce a string: %w", text, err)
	}
	return str.AsString(), nil
}

func objectOf(m map[string]string) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(m))
	for k, v := range m {
		attrs[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(attrs)
}

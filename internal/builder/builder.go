package builder

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/consumption"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/handlers"
	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/plugin"
)

// Builder builds components. It holds no per-build state and is safe for
// concurrent use, provided the handlers are frozen and concurrent builds work
// on disjoint nodes.
type Builder struct {
	handlers *handlers.Handlers
}

// New creates a Builder resolving inputs through h.
func New(h *handlers.Handlers) *Builder {
	return &Builder{handlers: h}
}

// attempt is the outcome of one construction path.
type attempt struct {
	instance any
	unused   hcl.Diagnostics
	err      error
}

// Build constructs the component described by desc from n. It never returns
// an error: failures are reported through the Result.
//
// A nil descriptor, node or configuration is a programming error and panics.
func (b *Builder) Build(ctx context.Context, desc *plugin.Descriptor, n *node.Node, bctx Context) *Result {
	if desc == nil {
		panic("builder: no component descriptor was set")
	}
	if n == nil {
		panic("builder: no configuration node was set")
	}
	if bctx.Config == nil {
		panic("builder: no configuration was set")
	}

	ctx, logger := ctxlog.WithAttrs(ctx, "element", n.Name, "type", desc.TypeName())
	ep := desc.EntryPoints()
	res := &Result{}
	var last *attempt

	if ep.NewBuilder != nil {
		logger.Debug("Found builder factory.")
		last = b.withBuilder(ctx, desc, ep.NewBuilder, n, bctx)
		if last.err == nil {
			return b.finish(ctx, res, last, plugin.StrategyBuilder)
		}
		logger.Debug("Builder path failed.", "error", last.err)
		logger.Error("Unable to inject fields into builder for component.")
		res.Diagnostics = append(res.Diagnostics, failure(desc, n, plugin.StrategyBuilder, last.err))
	} else {
		logger.Debug("No builder factory found.")
	}

	if ep.Factory == nil {
		logger.Debug("No factory found.")
		if ep.NewBuilder == nil {
			res.Diagnostics = append(res.Diagnostics, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Component cannot be built",
				Detail:   fmt.Sprintf("%s has neither a builder factory nor a factory.", desc.TypeName()),
				Subject:  n.Range,
			})
		}
		return b.finish(ctx, res, last, plugin.StrategyNone)
	}

	last = b.withFactory(ctx, desc, ep.Factory, n, bctx)
	if last.err != nil {
		logger.Debug("Factory path failed.", "error", last.err)
		logger.Error("Unable to invoke factory for component.")
		res.Diagnostics = append(res.Diagnostics, failure(desc, n, plugin.StrategyFactory, last.err))
		return b.finish(ctx, res, last, plugin.StrategyNone)
	}
	return b.finish(ctx, res, last, plugin.StrategyFactory)
}

// finish records the last attempt's instance and unused-data findings.
func (b *Builder) finish(ctx context.Context, res *Result, last *attempt, strategy plugin.Strategy) *Result {
	if last == nil {
		return res
	}
	logger := ctxlog.FromContext(ctx)
	for _, d := range last.unused {
		logger.Error(d.Detail)
	}
	res.Diagnostics = append(res.Diagnostics, last.unused...)
	if last.err == nil {
		res.Instance = last.instance
		res.Strategy = strategy
		logger.Debug("Component built.", "strategy", strategy)
	}
	return res
}

func (b *Builder) withBuilder(ctx context.Context, desc *plugin.Descriptor, newBuilder func() plugin.Builder, n *node.Node, bctx Context) (a *attempt) {
	a = &attempt{}
	defer recoverInto(ctx, &a.err)

	pb := newBuilder()
	if pb == nil {
		a.err = errors.New("builder factory returned nil")
		return a
	}

	claims := consumption.New(n)
	for _, spec := range pb.Inputs() {
		v, bound, err := b.bind(ctx, spec, n, bctx, claims)
		if err != nil {
			a.err = err
			return a
		}
		if !bound {
			continue
		}
		if err := spec.Assign(v); err != nil {
			a.err = err
			return a
		}
	}
	a.unused = claims.Check(desc.DeferChildren)

	instance, err := pb.Build()
	if err != nil {
		a.err = err
		return a
	}
	if instance == nil {
		a.err = errors.New("builder produced no instance")
		return a
	}
	a.instance = instance
	return a
}

func (b *Builder) withFactory(ctx context.Context, desc *plugin.Descriptor, f *plugin.Factory, n *node.Node, bctx Context) (a *attempt) {
	a = &attempt{}
	defer recoverInto(ctx, &a.err)

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Constructing component with factory.", "params", len(f.Params))

	claims := consumption.New(n)
	args := make([]any, len(f.Params))
	for i, spec := range f.Params {
		v, _, err := b.bind(ctx, spec, n, bctx, claims)
		if err != nil {
			a.err = err
			return a
		}
		if v != nil && spec.Type != nil && !reflect.TypeOf(v).AssignableTo(spec.Type) {
			a.err = fmt.Errorf("input %q: cannot assign %T to %s", spec.Name, v, spec.Type)
			return a
		}
		args[i] = v
	}
	a.unused = claims.Check(desc.DeferChildren)

	instance, err := f.Fn(args)
	if err != nil {
		a.err = err
		return a
	}
	if instance == nil {
		a.err = errors.New("factory produced no instance")
		return a
	}
	a.instance = instance
	return a
}

// bind resolves one input. Inputs whose kind has no handler are left unbound.
func (b *Builder) bind(ctx context.Context, spec plugin.InputSpec, n *node.Node, bctx Context, claims *consumption.Tracker) (any, bool, error) {
	h, ok := b.handlers.Lookup(spec.Kind)
	if !ok {
		ctxlog.FromContext(ctx).Debug("No handler for input kind, leaving zero value.", "input", spec.Name, "kind", spec.Kind)
		return nil, false, nil
	}
	binding := &handlers.Binding{
		Input:  spec,
		Config: bctx.Config,
		Node:   n,
		Event:  bctx.Event,
		Claims: claims,
	}
	v, err := h.Visit(ctx, binding)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func recoverInto(ctx context.Context, err *error) {
	if r := recover(); r != nil {
		ctxlog.FromContext(ctx).Debug("Recovered from panic in component code.", "panic", r, "stack", string(debug.Stack()))
		*err = fmt.Errorf("panic: %v", r)
	}
}

func failure(desc *plugin.Descriptor, n *node.Node, strategy plugin.Strategy, err error) *hcl.Diagnostic {
	summary := "Unable to invoke factory"
	if strategy == plugin.StrategyBuilder {
		summary = "Unable to inject fields into builder"
	}
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf("Building %s for element %s failed: %v", desc.TypeName(), n.Describe(), err),
		Subject:  n.Range,
	}
}

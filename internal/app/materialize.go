package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/builder"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/node"
	"golang.org/x/sync/errgroup"
)

// Materialize builds every component of the model. Children are built before
// their parent so the parent can take the built objects as elements, unless
// the parent's component defers its children. Siblings are built
// concurrently, at most WorkerCount at a time per level.
//
// Failures never stop the walk: they end up in the report.
func (a *App) Materialize(ctx context.Context, model *config.Model) *Report {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Materializing configuration tree.", "components", len(model.Components), "workers", a.config.WorkerCount)

	bctx := builder.Context{
		Config: config.NewConfiguration(a.config.ConfigPath, model.Properties),
	}
	report := &Report{}
	a.buildLevel(ctx, model.Components, bctx, report, true)
	return report
}

func (a *App) buildLevel(ctx context.Context, nodes []*node.Node, bctx builder.Context, report *Report, topLevel bool) {
	g := new(errgroup.Group)
	g.SetLimit(a.config.WorkerCount)
	for _, n := range nodes {
		g.Go(func() error {
			a.buildNode(ctx, n, bctx, report, topLevel)
			return nil
		})
	}
	_ = g.Wait()
}

func (a *App) buildNode(ctx context.Context, n *node.Node, bctx builder.Context, report *Report, topLevel bool) {
	logger := ctxlog.FromContext(ctx)

	desc, ok := a.registry.Lookup(n.Name)
	if !ok {
		if !topLevel {
			// Plain data for the parent, which may consume it through a node input.
			logger.Debug("No component registered for nested element.", "element", n.Name)
			return
		}
		logger.Error("Unknown component.", "element", n.Name)
		report.fail(n, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown component",
			Detail:   fmt.Sprintf("No component is registered for element %q.", n.Name),
			Subject:  n.Range,
		})
		return
	}

	n.Type = desc.Name
	if !desc.DeferChildren {
		a.buildLevel(ctx, n.Children, bctx, report, false)
	}

	res := a.builder.Build(ctx, desc, n, bctx)
	if res.OK() {
		n.Object = res.Instance
	}
	report.record(n, res)
}

package handlers

import (
	"context"
	"fmt"
	"reflect"

	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/node"
)

// visitElement resolves an input from already-built children. A slice target
// collects every matching child in declaration order; any other target takes
// the first match, trying aliases before the primary name.
//
// A matching child that failed to build is claimed and skipped. Its own
// failure is already reported, so the parent is built without it.
func visitElement(ctx context.Context, b *Binding) (any, error) {
	logger := ctxlog.FromContext(ctx)
	target := b.Input.Type

	if target != nil && target.Kind() == reflect.Slice {
		var matched []*node.Node
		for _, child := range b.Node.Children {
			if answersTo(child, b.Input.Names()) && b.Claims.ClaimChild(child) {
				matched = append(matched, child)
			}
		}
		if len(matched) == 0 {
			return missingElement(ctx, b)
		}
		out := reflect.MakeSlice(target, 0, len(matched))
		for _, child := range matched {
			if !isBuilt(ctx, b, child) {
				continue
			}
			obj, err := childObject(child, target.Elem())
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, reflect.ValueOf(obj))
		}
		if out.Len() == 0 {
			return missingElement(ctx, b)
		}
		b.Matched = matched[0].Name
		logger.Debug("Resolved elements.", "input", b.Input.Name, "count", out.Len())
		return out.Interface(), nil
	}

	for _, name := range b.Input.Names() {
		for _, child := range b.Node.Children {
			if !child.Matches(name) || !b.Claims.ClaimChild(child) {
				continue
			}
			if !isBuilt(ctx, b, child) {
				continue
			}
			b.Matched = child.Name
			logger.Debug("Resolved element.", "input", b.Input.Name, "matched", child.Name)
			return childObject(child, target)
		}
	}
	return missingElement(ctx, b)
}

func answersTo(child *node.Node, names []string) bool {
	for _, name := range names {
		if child.Matches(name) {
			return true
		}
	}
	return false
}

func missingElement(ctx context.Context, b *Binding) (any, error) {
	if b.Input.Required {
		return nil, fmt.Errorf("element %q is required by %s", b.Input.Name, b.Node.Describe())
	}
	ctxlog.FromContext(ctx).Debug("Element not present, leaving default.", "input", b.Input.Name)
	return nil, nil
}

func isBuilt(ctx context.Context, b *Binding, child *node.Node) bool {
	if child.Object != nil {
		return true
	}
	ctxlog.FromContext(ctx).Error("Skipping element that was not built.", "input", b.Input.Name, "child", child.Describe())
	return false
}

func childObject(child *node.Node, target reflect.Type) (any, error) {
	if target != nil && !reflect.TypeOf(child.Object).AssignableTo(target) {
		return nil, fmt.Errorf("element %s built a %T, which is not a %s", child.Describe(), child.Object, target)
	}
	return child.Object, nil
}

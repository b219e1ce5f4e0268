// Package group provides a component that collects its nested elements as
// raw configuration nodes instead of building them.
package group

import (
	"reflect"

	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Group holds the unbuilt children of a group element.
type Group struct {
	Name     string
	Children []*node.Node
}

// Find returns the first node with the given name attribute, searching each
// child's subtree depth-first.
func (g *Group) Find(name string) (*node.Node, bool) {
	var found *node.Node
	for _, c := range g.Children {
		c.Walk(func(n *node.Node) bool {
			if n.Attributes["name"] == name {
				found = n
			}
			return found == nil
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

// Register registers the group component.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&plugin.Descriptor{
		Name:          "group",
		Type:          reflect.TypeFor[*Group](),
		DeferChildren: true,
		NewBuilder: func() plugin.Builder {
			return &groupBuilder{}
		},
	})
}

type groupBuilder struct {
	name string
	node *node.Node
}

func (b *groupBuilder) Inputs() []plugin.InputSpec {
	return []plugin.InputSpec{
		plugin.Field(&b.name, plugin.Attr("name")),
		plugin.Field(&b.node, plugin.Node()),
	}
}

func (b *groupBuilder) Build() (any, error) {
	g := &Group{Name: b.name}
	if b.node != nil {
		g.Children = append(g.Children, b.node.Children...)
	}
	return g, nil
}

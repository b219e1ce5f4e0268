// Package node holds the configuration tree the construction engine consumes.
package node

import (
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Node is a single element of the configuration tree: a name, string
// attributes, ordered children and, after a successful build, the object that
// was constructed from it.
type Node struct {
	// Name is the element name as written in the configuration.
	// Example: "console"
	Name string
	// Type is the element name of the component resolved for this node. It is
	// only used to phrase diagnostics and may be empty.
	Type string
	// Attributes maps attribute keys to their raw, unsubstituted values.
	Attributes map[string]string
	// Children are the nested elements in declaration order.
	Children []*Node
	// Value is the node's text content, if the source format has one.
	Value string
	// Range points at the element in its source file. It may be nil for
	// trees built in code.
	Range *hcl.Range

	// Object is the instance built from this node. It is set by the tree
	// materializer once, before the parent node is built.
	Object any
}

// New creates an empty node with the given element name.
func New(name string) *Node {
	return &Node{
		Name:       name,
		Attributes: make(map[string]string),
	}
}

// SetAttribute sets an attribute and returns the node for chaining.
func (n *Node) SetAttribute(key, value string) *Node {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[key] = value
	return n
}

// AddChild appends children and returns the node for chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// ElementName returns the resolved element type name, falling back to the
// node name.
func (n *Node) ElementName() string {
	if n.Type != "" {
		return n.Type
	}
	return n.Name
}

// Describe renders the node for diagnostics: just the name when it equals
// the element type, "type name" otherwise.
func (n *Node) Describe() string {
	elem := n.ElementName()
	if elem == n.Name {
		return n.Name
	}
	return elem + " " + n.Name
}

// AttributeKey finds the stored key for name. An exact match wins over a
// case-insensitive one.
func (n *Node) AttributeKey(name string) (string, bool) {
	if _, ok := n.Attributes[name]; ok {
		return name, true
	}
	for _, key := range n.AttributeKeys() {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// AttributeKeys returns the attribute keys sorted, so that iteration is
// deterministic.
func (n *Node) AttributeKeys() []string {
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Matches reports whether the node answers to name, either by its own name
// or by its resolved element type, ignoring case.
func (n *Node) Matches(name string) bool {
	return strings.EqualFold(n.Name, name) || (n.Type != "" && strings.EqualFold(n.Type, name))
}

// Walk visits n and all descendants depth-first, parents before children.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

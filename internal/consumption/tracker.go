package consumption

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/node"
)

// Tracker records claimed attribute keys and children of one node.
type Tracker struct {
	node     *node.Node
	attrs    map[string]struct{}
	children map[*node.Node]struct{}
}

// New creates a tracker for n with nothing claimed.
func New(n *node.Node) *Tracker {
	return &Tracker{
		node:     n,
		attrs:    make(map[string]struct{}),
		children: make(map[*node.Node]struct{}),
	}
}

// ClaimAttribute marks key as consumed. It returns false when the node has
// no such attribute or the key was already claimed: a key is consumed at
// most once.
func (t *Tracker) ClaimAttribute(key string) bool {
	if _, ok := t.node.Attributes[key]; !ok {
		return false
	}
	if _, claimed := t.attrs[key]; claimed {
		return false
	}
	t.attrs[key] = struct{}{}
	return true
}

// AttributeClaimed reports whether key has been consumed.
func (t *Tracker) AttributeClaimed(key string) bool {
	_, ok := t.attrs[key]
	return ok
}

// ClaimChild marks child as consumed. It returns false when child is not a
// child of the tracked node or was already claimed.
func (t *Tracker) ClaimChild(child *node.Node) bool {
	if !t.isChild(child) {
		return false
	}
	if _, claimed := t.children[child]; claimed {
		return false
	}
	t.children[child] = struct{}{}
	return true
}

// ChildClaimed reports whether child has been consumed.
func (t *Tracker) ChildClaimed(child *node.Node) bool {
	_, ok := t.children[child]
	return ok
}

func (t *Tracker) isChild(child *node.Node) bool {
	for _, c := range t.node.Children {
		if c == child {
			return true
		}
	}
	return false
}

// UnusedAttributes returns the unclaimed attribute keys, sorted.
func (t *Tracker) UnusedAttributes() []string {
	var out []string
	for _, key := range t.node.AttributeKeys() {
		if _, ok := t.attrs[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

// UnusedChildren returns the unclaimed children in declaration order.
func (t *Tracker) UnusedChildren() []*node.Node {
	var out []*node.Node
	for _, c := range t.node.Children {
		if _, ok := t.children[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Check produces the diagnostics for everything left unclaimed: one for all
// leftover attributes together and, unless deferChildren is set, one per
// leftover child. None of them is meant to fail a build.
func (t *Tracker) Check(deferChildren bool) hcl.Diagnostics {
	var diags hcl.Diagnostics

	if unused := t.UnusedAttributes(); len(unused) > 0 {
		quoted := make([]string, len(unused))
		for i, key := range unused {
			quoted[i] = fmt.Sprintf("%q", key)
		}
		var detail string
		if len(unused) == 1 {
			detail = fmt.Sprintf("%s contains an invalid element or attribute %s", t.node.Name, quoted[0])
		} else {
			detail = fmt.Sprintf("%s contains invalid attributes %s", t.node.Name, strings.Join(quoted, ", "))
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unused configuration attribute",
			Detail:   detail,
			Subject:  t.node.Range,
		})
	}

	if deferChildren {
		return diags
	}
	for _, child := range t.UnusedChildren() {
		subject := child.Range
		if subject == nil {
			subject = t.node.Range
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unmatched child element",
			Detail:   fmt.Sprintf("%s has no parameter that matches element %s", t.node.Describe(), child.Name),
			Subject:  subject,
		})
	}
	return diags
}

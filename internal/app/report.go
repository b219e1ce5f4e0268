package app

import (
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/builder"
	"github.com/specialistvlad/plugbuild/internal/node"
)

// ComponentStatus is the outcome of building one node.
type ComponentStatus struct {
	Element  string `json:"element"`
	Name     string `json:"name,omitempty"`
	Strategy string `json:"strategy"`
	Built    bool   `json:"built"`
}

// Report is the outcome of materializing a configuration. It is safe for
// concurrent use while the tree is being built.
type Report struct {
	mu          sync.Mutex
	components  []ComponentStatus
	built       int
	failed      int
	diagnostics hcl.Diagnostics
}

func (r *Report) record(n *node.Node, res *builder.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components = append(r.components, ComponentStatus{
		Element:  n.ElementName(),
		Name:     n.Attributes["name"],
		Strategy: res.Strategy.String(),
		Built:    res.OK(),
	})
	if res.OK() {
		r.built++
	} else {
		r.failed++
	}
	r.diagnostics = append(r.diagnostics, res.Diagnostics...)
}

func (r *Report) fail(n *node.Node, diag *hcl.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components = append(r.components, ComponentStatus{
		Element:  n.Name,
		Name:     n.Attributes["name"],
		Strategy: "none",
	})
	r.failed++
	r.diagnostics = append(r.diagnostics, diag)
}

// Built returns the number of components built.
func (r *Report) Built() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.built
}

// Failed returns the number of components that could not be built.
func (r *Report) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Diagnostics returns every diagnostic collected so far.
func (r *Report) Diagnostics() hcl.Diagnostics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(hcl.Diagnostics(nil), r.diagnostics...)
}

// Components returns the status of every node that was built or attempted.
func (r *Report) Components() []ComponentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ComponentStatus(nil), r.components...)
}

// HasErrors reports whether any component failed or any error diagnostic was
// produced.
func (r *Report) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed > 0 || r.diagnostics.HasErrors()
}

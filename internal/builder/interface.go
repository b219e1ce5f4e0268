package builder

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/substitute"
)

// Context carries the read-only services available to a Build.
type Context struct {
	// Config is required.
	Config *config.Configuration
	// Event is the optional runtime event for ${event.*} substitutions.
	Event substitute.Event
}

// Result is the outcome of a Build.
type Result struct {
	// Instance is the built component, nil on failure.
	Instance any
	// Strategy is the path that produced Instance.
	Strategy plugin.Strategy
	// Diagnostics holds invocation failures of every attempted path and the
	// unused-configuration findings of the last one.
	Diagnostics hcl.Diagnostics
}

// OK reports whether an instance was built.
func (r *Result) OK() bool {
	return r.Instance != nil
}

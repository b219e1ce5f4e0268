// SPDX-License-Identifier: MIT
package plugin

// Strategy identifies a construction path.
type Strategy int

const (
	// StrategyNone means nothing was built.
	StrategyNone Strategy = iota
	// StrategyBuilder is the builder-factory path.
	StrategyBuilder
	// StrategyFactory is the plain factory path.
	StrategyFactory
)

func (s Strategy) String() string {
	switch s {
	case StrategyBuilder:
		return "builder"
	case StrategyFactory:
		return "factory"
	default:
		return "none"
	}
}

// EntryPoints is the resolved set of construction strategies of a
// descriptor. Either field may be nil.
type EntryPoints struct {
	NewBuilder func() Builder
	Factory    *Factory
}

// Strategies lists the available strategies in the order they are tried.
func (e EntryPoints) Strategies() []Strategy {
	var out []Strategy
	if e.NewBuilder != nil {
		out = append(out, StrategyBuilder)
	}
	if e.Factory != nil {
		out = append(out, StrategyFactory)
	}
	return out
}

func resolve(d *Descriptor) EntryPoints {
	var ep EntryPoints
	if d.NewBuilder != nil {
		ep.NewBuilder = d.NewBuilder
	}
	if d.Factory != nil && d.Factory.Fn != nil {
		ep.Factory = d.Factory
	}
	return ep
}

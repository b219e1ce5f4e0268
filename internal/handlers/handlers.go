// Package handlers is the conversion registry: it maps an input kind to the
// handler that extracts a value for that input from a configuration node and
// converts it to the input's target type.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/consumption"
	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/substitute"
)

// Binding is everything a handler gets for one input. A new Binding is made
// for every call; handlers must not keep it, or the node and event it
// references, after Visit returns.
type Binding struct {
	Input  plugin.InputSpec
	Config *config.Configuration
	Node   *node.Node
	Event  substitute.Event
	// Claims records what the handler consumed from Node.
	Claims *consumption.Tracker
	// Matched is set by the handler to the attribute key or child name the
	// value was taken from, if any.
	Matched string
}

// Substitute resolves references in s against the configuration and event.
func (b *Binding) Substitute(s string) (string, error) {
	return b.Config.Substitutor().Replace(b.Event, s)
}

// Handler resolves one input.
type Handler interface {
	Visit(ctx context.Context, b *Binding) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, b *Binding) (any, error)

// Visit calls f.
func (f HandlerFunc) Visit(ctx context.Context, b *Binding) (any, error) {
	return f(ctx, b)
}

// Handlers holds all the registered handlers. It is populated at startup and
// then frozen; after Freeze lookups take no lock.
type Handlers struct {
	mu     sync.RWMutex
	all    map[plugin.Kind]Handler
	frozen atomic.Bool
}

// New creates and initializes an empty Handlers registry.
func New() *Handlers {
	return &Handlers{
		all: make(map[plugin.Kind]Handler),
	}
}

// RegisterHandler registers the handler for an input kind. Registering a kind
// twice, or registering after Freeze, is a programming error and panics.
func (h *Handlers) RegisterHandler(kind plugin.Kind, handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frozen.Load() {
		panic(fmt.Sprintf("handler for kind '%s' registered after the registry was frozen", kind))
	}
	if _, exists := h.all[kind]; exists {
		panic(fmt.Sprintf("handler for kind '%s' already registered", kind))
	}
	slog.Debug("Registering conversion handler.", "kind", kind)
	h.all[kind] = handler
}

// Freeze makes the registry read-only.
func (h *Handlers) Freeze() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (h *Handlers) Frozen() bool {
	return h.frozen.Load()
}

// Lookup returns the handler for kind. It is safe for concurrent use.
func (h *Handlers) Lookup(kind plugin.Kind) (Handler, bool) {
	if h.frozen.Load() {
		handler, ok := h.all[kind]
		return handler, ok
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	handler, ok := h.all[kind]
	return handler, ok
}

// Kinds returns the registered kinds, sorted.
func (h *Handlers) Kinds() []plugin.Kind {
	h.mu.RLock()
	defer h.mu.RUnlock()
	kinds := make([]plugin.Kind, 0, len(h.all))
	for k := range h.all {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// RegisterDefaults registers the built-in handlers for every kind declared in
// the plugin package.
func RegisterDefaults(h *Handlers) {
	h.RegisterHandler(plugin.KindAttribute, HandlerFunc(visitAttribute))
	h.RegisterHandler(plugin.KindElement, HandlerFunc(visitElement))
	h.RegisterHandler(plugin.KindValue, HandlerFunc(visitValue))
	h.RegisterHandler(plugin.KindNode, HandlerFunc(visitNode))
	h.RegisterHandler(plugin.KindConfiguration, HandlerFunc(visitConfiguration))
}

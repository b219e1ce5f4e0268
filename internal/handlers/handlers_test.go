package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/consumption"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/substitute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

func newBinding(spec plugin.InputSpec, n *node.Node) *Binding {
	return &Binding{
		Input:  spec,
		Config: config.NewConfiguration("test", map[string]string{"host": "example.org"}, substitute.WithoutEnviron()),
		Node:   n,
		Claims: consumption.New(n),
	}
}

func TestHandlers_Registration(t *testing.T) {
	t.Parallel()

	h := New()
	RegisterDefaults(h)

	for _, kind := range []plugin.Kind{plugin.KindAttribute, plugin.KindElement, plugin.KindValue, plugin.KindNode, plugin.KindConfiguration} {
		_, ok := h.Lookup(kind)
		assert.True(t, ok, "expected a handler for %s", kind)
	}
	_, ok := h.Lookup("plugin")
	assert.False(t, ok)
	assert.Len(t, h.Kinds(), 5)

	require.PanicsWithValue(t, "handler for kind 'value' already registered", func() {
		h.RegisterHandler(plugin.KindValue, HandlerFunc(visitValue))
	})

	h.Freeze()
	require.True(t, h.Frozen())
	_, ok = h.Lookup(plugin.KindAttribute)
	assert.True(t, ok, "lookups keep working after freeze")
	require.Panics(t, func() {
		h.RegisterHandler("plugin", HandlerFunc(visitNode))
	})
}

func TestVisitAttribute(t *testing.T) {
	t.Parallel()

	t.Run("alias wins over primary name and is claimed under the matched key", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		n := node.New("limiter").SetAttribute("refRate", "10").SetAttribute("rate", "20")
		var rate int
		b := newBinding(plugin.Field(&rate, plugin.Attr("rate").WithAliases("refRate")), n)

		got, err := visitAttribute(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, 10, got)
		assert.Equal(t, "refRate", b.Matched)
		assert.True(t, b.Claims.AttributeClaimed("refRate"))
		assert.False(t, b.Claims.AttributeClaimed("rate"))
	})

	t.Run("matching ignores case", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		n := node.New("client").SetAttribute("Timeout", "5s")
		b := newBinding(plugin.Param[time.Duration](plugin.Attr("timeout")), n)

		got, err := visitAttribute(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, got)
		assert.Equal(t, "Timeout", b.Matched)
	})

	t.Run("default is substituted and converted", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		n := node.New("client")
		b := newBinding(plugin.Param[string](plugin.Attr("url").WithDefault("https://${props.host}/")), n)

		got, err := visitAttribute(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, "https://example.org/", got)
		assert.Empty(t, b.Matched)
	})

	t.Run("missing optional attribute yields nil", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		b := newBinding(plugin.Param[int](plugin.Attr("size")), node.New("x"))

		got, err := visitAttribute(ctx, b)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing required attribute is an error", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		b := newBinding(plugin.Param[int](plugin.Attr("size").AsRequired()), node.New("x"))

		_, err := visitAttribute(ctx, b)
		require.ErrorContains(t, err, `attribute "size" is required by x`)
	})

	t.Run("conversion failure still claims the attribute", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		n := node.New("x").SetAttribute("size", "big")
		b := newBinding(plugin.Param[int](plugin.Attr("size")), n)

		_, err := visitAttribute(ctx, b)
		require.Error(t, err)
		assert.True(t, b.Claims.AttributeClaimed("size"))
	})

	t.Run("sensitive values stay out of the log", func(t *testing.T) {
		t.Parallel()
		ctx, logs := testContext(t)
		n := node.New("db").SetAttribute("password", "hunter2")
		b := newBinding(plugin.Param[string](plugin.Attr("password").AsSensitive()), n)

		got, err := visitAttribute(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", got)
		assert.NotContains(t, logs.String(), "hunter2")
		assert.Contains(t, logs.String(), redacted)
	})
}

type widget struct{ name string }

func built(name string) *node.Node {
	n := node.New(name)
	n.Object = &widget{name: name}
	return n
}

func TestVisitElement(t *testing.T) {
	t.Parallel()

	t.Run("scalar target takes the first match", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		first, second := built("layout"), built("layout")
		n := node.New("console").AddChild(first, second)
		b := newBinding(plugin.Param[*widget](plugin.Element("layout")), n)

		got, err := visitElement(ctx, b)
		require.NoError(t, err)
		assert.Same(t, first.Object, got)
		assert.True(t, b.Claims.ChildClaimed(first))
		assert.False(t, b.Claims.ChildClaimed(second))
	})

	t.Run("slice target collects every match in order", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		a, other, c := built("filter"), built("layout"), built("Filter")
		n := node.New("console").AddChild(a, other, c)
		b := newBinding(plugin.Param[[]*widget](plugin.Element("filter")), n)

		got, err := visitElement(ctx, b)
		require.NoError(t, err)
		require.IsType(t, []*widget{}, got)
		ws := got.([]*widget)
		require.Len(t, ws, 2)
		assert.Same(t, a.Object, ws[0])
		assert.Same(t, c.Object, ws[1])
		assert.False(t, b.Claims.ChildClaimed(other))
	})

	t.Run("aliases are tried before the primary name", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		primary, alias := built("layout"), built("format")
		n := node.New("console").AddChild(primary, alias)
		b := newBinding(plugin.Param[*widget](plugin.Element("layout").WithAliases("format")), n)

		got, err := visitElement(ctx, b)
		require.NoError(t, err)
		assert.Same(t, alias.Object, got)
		assert.Equal(t, "format", b.Matched)
	})

	t.Run("unbuilt children are claimed and skipped", func(t *testing.T) {
		t.Parallel()
		ctx, logs := testContext(t)
		broken, good := node.New("layout"), built("layout")
		n := node.New("console").AddChild(broken, good)
		b := newBinding(plugin.Param[*widget](plugin.Element("layout")), n)

		got, err := visitElement(ctx, b)
		require.NoError(t, err)
		assert.Same(t, good.Object, got)
		assert.True(t, b.Claims.ChildClaimed(broken))
		assert.Contains(t, logs.String(), "Skipping element that was not built.")

		only := node.New("layout")
		b = newBinding(plugin.Param[[]*widget](plugin.Element("layout")), node.New("console").AddChild(only))
		got, err = visitElement(ctx, b)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.True(t, b.Claims.ChildClaimed(only))

		b = newBinding(plugin.Param[*widget](plugin.Element("layout").AsRequired()), node.New("console").AddChild(node.New("layout")))
		_, err = visitElement(ctx, b)
		require.ErrorContains(t, err, `element "layout" is required by console`)
	})

	t.Run("wrong object type is an error", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		child := node.New("layout")
		child.Object = "text"
		n := node.New("console").AddChild(child)
		b := newBinding(plugin.Param[*widget](plugin.Element("layout")), n)

		_, err := visitElement(ctx, b)
		require.ErrorContains(t, err, "not a *handlers.widget")
	})

	t.Run("missing required element is an error", func(t *testing.T) {
		t.Parallel()
		ctx, _ := testContext(t)
		b := newBinding(plugin.Param[*widget](plugin.Element("layout").AsRequired()), node.New("console"))

		_, err := visitElement(ctx, b)
		require.ErrorContains(t, err, `element "layout" is required by console`)
	})
}

func TestVisitValue(t *testing.T) {
	t.Parallel()
	ctx, _ := testContext(t)

	n := node.New("property")
	n.Value = "${props.host}"
	got, err := visitValue(ctx, newBinding(plugin.Param[string](plugin.Value()), n))
	require.NoError(t, err)
	assert.Equal(t, "example.org", got)

	attr := node.New("property").SetAttribute("value", "3")
	b := newBinding(plugin.Param[int](plugin.Value()), attr)
	got, err = visitValue(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.True(t, b.Claims.AttributeClaimed("value"))

	_, err = visitValue(ctx, newBinding(plugin.Param[int](plugin.Value().AsRequired()), node.New("property")))
	require.Error(t, err)
}

func TestVisitNodeAndConfiguration(t *testing.T) {
	t.Parallel()
	ctx, _ := testContext(t)

	n := node.New("group")
	b := newBinding(plugin.Node(), n)
	got, err := visitNode(ctx, b)
	require.NoError(t, err)
	assert.Same(t, n, got)

	got, err = visitConfiguration(ctx, b)
	require.NoError(t, err)
	assert.Same(t, b.Config, got)
	assert.Equal(t, reflect.TypeFor[*config.Configuration](), reflect.TypeOf(got))
}

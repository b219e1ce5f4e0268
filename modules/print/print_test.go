package print

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/specialistvlad/plugbuild/internal/builder"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/handlers"
	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
	"github.com/specialistvlad/plugbuild/internal/substitute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, r *registry.Registry, n *node.Node) *builder.Result {
	t.Helper()
	h := handlers.New()
	handlers.RegisterDefaults(h)
	h.Freeze()

	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, r.Validate(ctx, h))

	desc, ok := r.Lookup(n.Name)
	require.True(t, ok)
	n.Type = desc.Name
	return builder.New(h).Build(ctx, desc, n, builder.Context{
		Config: config.NewConfiguration("test", nil, substitute.WithoutEnviron()),
	})
}

func TestLayout_Format(t *testing.T) {
	t.Parallel()

	l, err := NewLayout("%d [%p] %m%% %x%", "")
	require.NoError(t, err)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	assert.Equal(t, "2024-01-02T03:04:05Z [WARN] disk low% %x%", l.Format(slog.LevelWarn, "disk low"))

	_, err = NewLayout("", "")
	require.Error(t, err)
}

func TestConsole_Print(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	layout, err := NewLayout("%p %m", "-- start --")
	require.NoError(t, err)
	c := NewConsole("main", buf, slog.LevelInfo, layout)

	require.NoError(t, c.Print(slog.LevelDebug, "hidden"))
	require.NoError(t, c.Print(slog.LevelInfo, "one"))
	require.NoError(t, c.Print(slog.LevelError, "two"))

	assert.Equal(t, "-- start --\nINFO one\nERROR two\n", buf.String())
}

func TestModule_BuildsConsoleWithLayout(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	r := registry.New()
	(&Module{Streams: map[string]io.Writer{"stdout": io.Discard, "stderr": stderr}}).Register(r)

	layout := node.New("PatternLayout").SetAttribute("pattern", "%p: %m")
	layoutRes := build(t, r, layout)
	require.True(t, layoutRes.OK())
	assert.Equal(t, plugin.StrategyFactory, layoutRes.Strategy)
	layout.Object = layoutRes.Instance

	n := node.New("console").
		SetAttribute("stream", "STDERR").
		SetAttribute("name", "errors").
		SetAttribute("level", "warn").
		AddChild(layout)
	res := build(t, r, n)

	require.True(t, res.OK(), "%v", res.Diagnostics)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, plugin.StrategyBuilder, res.Strategy)

	c := res.Instance.(*Console)
	assert.Equal(t, "errors", c.Name)
	assert.Equal(t, slog.LevelWarn, c.Level)
	require.NoError(t, c.Print(slog.LevelWarn, "careful"))
	assert.Equal(t, "WARN: careful\n", stderr.String())
}

func TestModule_Failures(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)

	res := build(t, r, node.New("console").SetAttribute("target", "printer"))
	assert.False(t, res.OK())
	assert.Contains(t, res.Diagnostics[0].Detail, `unknown console target "printer"`)

	res = build(t, r, node.New("layout"))
	assert.False(t, res.OK(), "pattern is required")
}

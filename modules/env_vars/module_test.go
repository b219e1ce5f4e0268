package env_vars

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/specialistvlad/plugbuild/internal/builder"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
	"github.com/specialistvlad/plugbuild/internal/handlers"
	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/registry"
	"github.com/specialistvlad/plugbuild/internal/substitute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	environ := []string{"APP_HOST=example.org", "APP_PORT=80", "HOME=/root", "APP_EMPTY=", "BROKEN"}

	s := NewSnapshot(environ, "APP_", false)
	assert.Equal(t, []string{"APP_EMPTY", "APP_HOST", "APP_PORT"}, s.Keys())
	v, ok := s.Get("APP_HOST")
	require.True(t, ok)
	assert.Equal(t, "example.org", v)

	trimmed := NewSnapshot(environ, "APP_", true)
	assert.Equal(t, []string{"EMPTY", "HOST", "PORT"}, trimmed.Keys())

	all := NewSnapshot(environ, "", false)
	assert.Len(t, all.Vars, 4)
}

func TestModule_Build(t *testing.T) {
	t.Parallel()

	h := handlers.New()
	handlers.RegisterDefaults(h)
	h.Freeze()
	r := registry.New()
	(&Module{Environ: func() []string { return []string{"APP_A=1", "OTHER=2"} }}).Register(r)

	desc, ok := r.Lookup("env_vars")
	require.True(t, ok)

	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	n := node.New("env_vars").SetAttribute("prefix", "${props.prefix}").SetAttribute("trim_prefix", "true")
	res := builder.New(h).Build(ctx, desc, n, builder.Context{
		Config: config.NewConfiguration("test", map[string]string{"prefix": "APP_"}, substitute.WithoutEnviron()),
	})

	require.True(t, res.OK())
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, map[string]string{"A": "1"}, res.Instance.(*Snapshot).Vars)
}

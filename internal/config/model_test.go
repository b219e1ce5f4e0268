package config

import (
	"testing"

	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/specialistvlad/plugbuild/internal/substitute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Merge(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.Properties["a"] = "1"
	m.Components = append(m.Components, node.New("console"))

	other := NewModel()
	other.Properties["a"] = "2"
	other.Properties["b"] = "3"
	other.Components = append(other.Components, node.New("layout"))

	m.Merge(other)
	m.Merge(nil)

	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, m.Properties)
	require.Len(t, m.Components, 2)
	assert.Equal(t, "layout", m.Components[1].Name)
}

func TestConfiguration(t *testing.T) {
	t.Parallel()

	props := map[string]string{"host": "example.org"}
	cfg := NewConfiguration("main", props, substitute.WithoutEnviron())
	props["host"] = "changed"

	assert.Equal(t, "main", cfg.Name())

	out, err := cfg.Substitutor().Replace(nil, "${props.host}")
	require.NoError(t, err)
	assert.Equal(t, "example.org", out, "properties are copied")
}

package integration_tests

import (
	"testing"
	"time"

	"github.com/specialistvlad/plugbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: nested elements are built before the element that consumes them.
func TestTreeMaterialization_ChildrenBeforeParent(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	sleeper := testutil.NewMockSleeperModule(nil, 50*time.Millisecond)
	src := `
sleeper {
  id = "parent"

  sleeper { id = "a" }
  sleeper {
    id = "b"
    sleeper { id = "b1" }
  }
}
`

	// --- Act ---
	result := testutil.RunHCLTest(t, src, sleeper)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, 4, result.Report.Built())
	assert.Equal(t, 0, result.Report.Failed())
	assert.Empty(t, result.Report.Diagnostics())

	parent, ok := sleeper.Record("parent")
	require.True(t, ok)
	for _, id := range []string{"a", "b"} {
		child, ok := sleeper.Record(id)
		require.True(t, ok, "sleeper %s did not run", id)
		assert.False(t, parent.Start.Before(child.End), "parent started before child %s finished", id)
	}

	b, _ := sleeper.Record("b")
	b1, ok := sleeper.Record("b1")
	require.True(t, ok)
	assert.False(t, b.Start.Before(b1.End), "b started before b1 finished")
}

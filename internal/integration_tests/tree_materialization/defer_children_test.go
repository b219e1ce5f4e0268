package integration_tests

import (
	"strings"
	"testing"

	"github.com/specialistvlad/plugbuild/internal/testutil"
	"github.com/specialistvlad/plugbuild/modules/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: a component that defers its children gets them unbuilt and
// produces no unmatched-child diagnostics.
func TestTreeMaterialization_DeferChildren(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	sleeper := testutil.NewMockSleeperModule(nil, 0)
	src := `
group "edge" {
  sleeper { id = "hidden" }
  anything { at = "all" }
}
`

	// --- Act ---
	result := testutil.RunHCLTest(t, src, &group.Module{}, sleeper)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Report.Built())
	assert.Empty(t, result.Report.Diagnostics())
	testutil.AssertBuilt(t, result, "group", "edge")

	_, ran := sleeper.Record("hidden")
	assert.False(t, ran, "deferred child must not be built")
	assert.False(t, strings.Contains(result.LogOutput, "has no parameter that matches element"))
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertBuilt checks that the report of a HarnessResult lists the named
// component as built.
func AssertBuilt(t *testing.T, result *HarnessResult, element, name string) {
	t.Helper()
	require.NotNil(t, result.Report, "run produced no report: %v", result.Err)

	for _, c := range result.Report.Components() {
		if c.Element == element && c.Name == name {
			require.True(t, c.Built, "component '%s.%s' was not built", element, name)
			return
		}
	}
	require.Failf(t, "component not found", "component '%s.%s' is not in the report", element, name)
}

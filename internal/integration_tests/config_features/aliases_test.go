package integration_tests

import (
	"testing"

	"github.com/specialistvlad/plugbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: element aliases resolve to the component and attribute aliases
// are tried before the primary name.
func TestConfigFeatures_Aliases(t *testing.T) {
	t.Parallel()

	rec, mod := newRecorder()
	src := `
say "aliased" {
  msg = "via alias"
}

echo "both" {
  text    = "alias wins"
  message = "primary"
}
`
	result := testutil.RunHCLTest(t, src, mod)

	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Report.Built())
	assert.Equal(t, "via alias", rec.get("aliased"))
	assert.Equal(t, "alias wins", rec.get("both"))

	// The primary name was not consumed, so it is reported.
	diags := result.Report.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, `echo contains an invalid element or attribute "message"`, diags[0].Detail)
}

package testutil

import (
	"testing"

	"github.com/specialistvlad/plugbuild/internal/registry"
)

// RunHCLTest runs a single HCL configuration through the integration harness.
func RunHCLTest(t *testing.T, src string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTest(t, map[string]string{"main.hcl": src}, modules...)
}

// RunYAMLTest runs a single YAML configuration through the integration harness.
func RunYAMLTest(t *testing.T, src string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTest(t, map[string]string{"main.yaml": src}, modules...)
}

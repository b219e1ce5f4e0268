package integration_tests

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/plugbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siblingsHCL(n int) string {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb, "sleeper { id = \"s%d\" }\n", i)
	}
	return sb.String()
}

// Test for: independent top-level components are built concurrently.
func TestTreeMaterialization_SiblingsBuildConcurrently(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	const count = 4
	sleeper := testutil.NewMockSleeperModule(nil, 100*time.Millisecond)

	// --- Act ---
	result := testutil.RunIntegrationTestWithContext(context.Background(), t,
		map[string]string{"main.hcl": siblingsHCL(count)},
		testutil.Options{WorkerCount: count},
		sleeper,
	)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, count, result.Report.Built())

	var latestStart, earliestEnd time.Time
	for i := range count {
		rec, ok := sleeper.Record(fmt.Sprintf("s%d", i))
		require.True(t, ok)
		if rec.Start.After(latestStart) {
			latestStart = rec.Start
		}
		if earliestEnd.IsZero() || rec.End.Before(earliestEnd) {
			earliestEnd = rec.End
		}
	}
	assert.True(t, latestStart.Before(earliestEnd), "expected all siblings to overlap")
}

// Test for: the worker count bounds how many siblings are built at once.
func TestTreeMaterialization_WorkerCountBoundsConcurrency(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	const count = 3
	sleeper := testutil.NewMockSleeperModule(nil, 30*time.Millisecond)

	// --- Act ---
	result := testutil.RunIntegrationTestWithContext(context.Background(), t,
		map[string]string{"main.hcl": siblingsHCL(count)},
		testutil.Options{WorkerCount: 1},
		sleeper,
	)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, count, result.Report.Built())

	var records []*testutil.ExecutionRecord
	for i := range count {
		rec, ok := sleeper.Record(fmt.Sprintf("s%d", i))
		require.True(t, ok)
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Start.Before(records[j].Start) })
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Start.Before(records[i-1].End), "builds overlapped with a single worker")
	}
}

package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"

	"github.com/yadavanujkumar/reagent"
)

// AssertTextEqual asserts that two multi-line strings match, printing a
// unified diff on mismatch. Prompt renderings are long; a diff is far
// easier to act on than two full dumps.
func AssertTextEqual(t *testing.T, expected, actual string, msgAndArgs ...any) bool {
	t.Helper()

	if expected == actual {
		return true
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return assert.Equal(t, expected, actual, msgAndArgs...)
	}

	t.Errorf("text mismatch:\n%s", diff)
	return false
}

// CountTraceTypes counts trace events by type name, for tests that care
// about what happened but not the exact ordering.
func CountTraceTypes(events []reagent.TraceEvent) map[string]int {
	counts := make(map[string]int)
	for _, event := range events {
		switch event.(type) {
		case *reagent.IterationStartTrace:
			counts["IterationStartTrace"]++
		case *reagent.IterationEndTrace:
			counts["IterationEndTrace"]++
		case *reagent.ModelCallTrace:
			counts["ModelCallTrace"]++
		case *reagent.ToolCallTrace:
			counts["ToolCallTrace"]++
		case *reagent.ParseErrorTrace:
			counts["ParseErrorTrace"]++
		}
	}
	return counts
}

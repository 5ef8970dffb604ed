package tools

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// RenderUnifiedDiff produces a unified diff between the before and
// after content of a patched file, for preview display. contextLines
// controls how many surrounding lines are shown (default 3). Returns
// the empty string when the contents are identical.
func RenderUnifiedDiff(filename, before, after string, contextLines int) string {
	if contextLines <= 0 {
		contextLines = 3
	}

	// SplitLines turns "" into a single empty line, which would show
	// as a phantom removal when a file is newly added or a phantom
	// insertion when deleted.
	var a, b []string
	if before != "" {
		a = difflib.SplitLines(before)
	}
	if after != "" {
		b = difflib.SplitLines(after)
	}

	diff := difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  contextLines,
	}

	result, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("(diff generation failed: %v)", err)
	}

	return result
}

package tools

import (
	"strings"
	"testing"
)

func TestRenderUnifiedDiff(t *testing.T) {
	diff := RenderUnifiedDiff("greet.txt", "hello\nworld\n", "hello\nthere\n", 3)

	if !strings.Contains(diff, "--- a/greet.txt") {
		t.Errorf("missing from-file header:\n%s", diff)
	}
	if !strings.Contains(diff, "+++ b/greet.txt") {
		t.Errorf("missing to-file header:\n%s", diff)
	}
	if !strings.Contains(diff, "-world") {
		t.Errorf("missing removal line:\n%s", diff)
	}
	if !strings.Contains(diff, "+there") {
		t.Errorf("missing insertion line:\n%s", diff)
	}
}

func TestRenderUnifiedDiff_Identical(t *testing.T) {
	if diff := RenderUnifiedDiff("same.txt", "a\nb\n", "a\nb\n", 3); diff != "" {
		t.Errorf("expected empty diff for identical content, got:\n%s", diff)
	}
}

func TestRenderUnifiedDiff_NewFile(t *testing.T) {
	diff := RenderUnifiedDiff("new.txt", "", "first\nsecond\n", 3)

	if !strings.Contains(diff, "+first") || !strings.Contains(diff, "+second") {
		t.Errorf("missing insertion lines:\n%s", diff)
	}
	// No before content means no removal rows at all.
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			t.Errorf("unexpected removal line %q in new-file diff:\n%s", line, diff)
		}
	}
}

func TestRenderUnifiedDiff_DeletedFile(t *testing.T) {
	diff := RenderUnifiedDiff("old.txt", "only\n", "", 3)

	if !strings.Contains(diff, "-only") {
		t.Errorf("missing removal line:\n%s", diff)
	}
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			t.Errorf("unexpected insertion line %q in deleted-file diff:\n%s", line, diff)
		}
	}
}

func TestRenderUnifiedDiff_DefaultContext(t *testing.T) {
	// Zero or negative context falls back to 3.
	before := "1\n2\n3\n4\n5\n6\n7\n8\n9\n"
	after := "1\n2\n3\n4\nx\n6\n7\n8\n9\n"

	diff := RenderUnifiedDiff("nums.txt", before, after, 0)
	if !strings.Contains(diff, " 2\n") {
		t.Errorf("expected three lines of leading context:\n%s", diff)
	}
	if strings.Contains(diff, " 1\n") {
		t.Errorf("context wider than three lines:\n%s", diff)
	}
}

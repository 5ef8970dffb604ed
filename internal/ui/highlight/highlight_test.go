package highlight

import (
	"strings"
	"testing"
)

func TestHighlightDisabled(t *testing.T) {
	h := New(false, "monokai")

	code := "package main"
	if got := h.Highlight(code, "go"); got != code {
		t.Errorf("disabled highlighter changed the input: %q", got)
	}
	diff := "--- a/x\n+++ b/x\n-old\n+new\n"
	if got := h.HighlightDiff(diff); got != diff {
		t.Errorf("disabled highlighter changed the diff: %q", got)
	}
}

func TestHighlightEnabled(t *testing.T) {
	h := New(true, "monokai")

	got := h.Highlight("package main", "go")
	if !strings.Contains(got, "\033[") {
		t.Errorf("expected ANSI escapes in highlighted output, got %q", got)
	}
	if !strings.Contains(got, "package") {
		t.Errorf("highlighted output lost the code text: %q", got)
	}
}

func TestHighlightDiff(t *testing.T) {
	h := New(true, "monokai")

	got := h.HighlightDiff("--- a/x\n+++ b/x\n@@ -1 +1 @@\n-old\n+new\n")
	if !strings.Contains(got, "\033[") {
		t.Errorf("expected ANSI escapes in highlighted diff, got %q", got)
	}
	if !strings.Contains(got, "old") || !strings.Contains(got, "new") {
		t.Errorf("highlighted diff lost content: %q", got)
	}
}

func TestHighlightUnknownLanguageFallsBack(t *testing.T) {
	h := New(true, "monokai")

	// Unknown languages use the fallback lexer rather than failing.
	got := h.Highlight("some plain text", "nosuchlang")
	if !strings.Contains(got, "some plain text") {
		t.Errorf("fallback output lost the text: %q", got)
	}
}

func TestHighlightUnknownStyleFallsBack(t *testing.T) {
	h := New(true, "nosuchstyle")

	got := h.Highlight("x = 1", "python")
	if !strings.Contains(got, "x") {
		t.Errorf("output lost the code text: %q", got)
	}
}

package patch

import (
	"reflect"
	"testing"

	pkerr "github.com/abdul-hamid-achik/patchkit/internal/errors"
)

// ---------------------------------------------------------------------------
// applyHunks: successful applications
// ---------------------------------------------------------------------------

func TestApplyHunks(t *testing.T) {
	tests := []struct {
		name        string
		base        []string
		hunks       []string
		window      int
		want        []string
		wantAdded   int
		wantRemoved int
	}{
		{
			name:  "pure context round trip",
			base:  []string{"a", "b", "c"},
			hunks: []string{" a", " b", " c"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "empty hunk set copies base through",
			base:  []string{"a", "b"},
			hunks: nil,
			want:  []string{"a", "b"},
		},
		// Only-"+" hunks consume no base lines: the cursor stays at 0 and
		// the insertions land ahead of the untouched base.
		{
			name:      "pure insertion",
			base:      []string{"a", "b"},
			hunks:     []string{"@@", "+x", "+y"},
			want:      []string{"x", "y", "a", "b"},
			wantAdded: 2,
		},
		{
			name:      "pure insertion into empty base",
			base:      nil,
			hunks:     []string{"@@", "+x"},
			want:      []string{"x"},
			wantAdded: 1,
		},
		{
			name:      "insertion between context",
			base:      []string{"a", "b"},
			hunks:     []string{"@@", " a", "+x", " b"},
			want:      []string{"a", "x", "b"},
			wantAdded: 1,
		},
		{
			name:        "pure deletion",
			base:        []string{"a", "b", "c"},
			hunks:       []string{"-b"},
			want:        []string{"a", "c"},
			wantRemoved: 1,
		},
		{
			name:        "deletion of leading lines",
			base:        []string{"a", "b", "c"},
			hunks:       []string{"-a", "-b"},
			want:        []string{"c"},
			wantRemoved: 2,
		},
		{
			name:        "resync copies skipped base lines verbatim",
			base:        []string{"alpha", "drift", "beta", "gamma"},
			hunks:       []string{" alpha", "-beta", "+delta", " gamma"},
			want:        []string{"alpha", "drift", "delta", "gamma"},
			wantAdded:   1,
			wantRemoved: 1,
		},
		{
			name:  "header offsets are ignored",
			base:  []string{"a"},
			hunks: []string{"@@ -5,2 +9,3 @@", " a"},
			want:  []string{"a"},
		},
		{
			name:      "trailing base appended after last hunk line",
			base:      []string{"a", "b", "c", "d"},
			hunks:     []string{" a", "+x"},
			want:      []string{"a", "x", "b", "c", "d"},
			wantAdded: 1,
		},
		{
			name:  "untagged lines pass through uncounted",
			base:  []string{"a"},
			hunks: []string{"raw"},
			want:  []string{"raw", "a"},
		},
		{
			name:  "match at far edge of window",
			base:  []string{"a", "x1", "x2", "b"},
			hunks: []string{" a", " b"},
			// After matching "a" the cursor sits at 1; with window
			// 3 the scan covers indexes 1..3, so "b" at 3 is
			// still in reach.
			window: 3,
			want:   []string{"a", "x1", "x2", "b"},
		},
		{
			name:        "carriage returns stripped for matching only",
			base:        []string{"hello\r", "world\r"},
			hunks:       []string{" hello", "-world", "+there"},
			want:        []string{"hello\r", "there"},
			wantAdded:   1,
			wantRemoved: 1,
		},
		{
			name:  "hunk line carriage return stripped",
			base:  []string{"hello"},
			hunks: []string{" hello\r"},
			want:  []string{"hello"},
		},
		{
			name:  "single space matches empty base line",
			base:  []string{"a", "", "b"},
			hunks: []string{" a", " ", " b"},
			want:  []string{"a", "", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := tt.window
			if window == 0 {
				window = DefaultResyncWindow
			}
			got, added, removed, err := applyHunks(tt.base, tt.hunks, window)
			if err != nil {
				t.Fatalf("applyHunks() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("applyHunks() = %q, want %q", got, tt.want)
			}
			if added != tt.wantAdded {
				t.Errorf("added = %d, want %d", added, tt.wantAdded)
			}
			if removed != tt.wantRemoved {
				t.Errorf("removed = %d, want %d", removed, tt.wantRemoved)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// applyHunks: mismatches
// ---------------------------------------------------------------------------

func TestApplyHunks_ContextMismatch(t *testing.T) {
	_, _, _, err := applyHunks([]string{"a"}, []string{" missing"}, DefaultResyncWindow)
	if err == nil {
		t.Fatal("expected error for unmatched context line")
	}
	if got := pkerr.GetCode(err); got != pkerr.CodeContextMismatch {
		t.Errorf("code = %q, want %q", got, pkerr.CodeContextMismatch)
	}
}

func TestApplyHunks_RemovalMismatch(t *testing.T) {
	_, _, _, err := applyHunks([]string{"a"}, []string{"-missing"}, DefaultResyncWindow)
	if err == nil {
		t.Fatal("expected error for unmatched removal line")
	}
	if got := pkerr.GetCode(err); got != pkerr.CodeRemovalMismatch {
		t.Errorf("code = %q, want %q", got, pkerr.CodeRemovalMismatch)
	}
}

func TestApplyHunks_MatchBeyondWindowFails(t *testing.T) {
	// "b" exists at index 4, but the window of 2 only covers
	// indexes 1 and 2 once "a" is consumed.
	base := []string{"a", "x1", "x2", "x3", "b"}
	hunks := []string{" a", " b"}

	_, _, _, err := applyHunks(base, hunks, 2)
	if err == nil {
		t.Fatal("expected error for match beyond resync window")
	}
	if got := pkerr.GetCode(err); got != pkerr.CodeContextMismatch {
		t.Errorf("code = %q, want %q", got, pkerr.CodeContextMismatch)
	}

	// Widening the window makes the same patch apply.
	got, _, _, err := applyHunks(base, hunks, DefaultResyncWindow)
	if err != nil {
		t.Fatalf("applyHunks() with default window error: %v", err)
	}
	want := []string{"a", "x1", "x2", "x3", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("applyHunks() = %q, want %q", got, want)
	}
}

func TestApplyHunks_CursorNeverMovesBackward(t *testing.T) {
	// The second " a" cannot match the already-consumed first line;
	// it must find the later duplicate instead.
	base := []string{"a", "mid", "a", "end"}
	hunks := []string{" a", " a"}

	got, _, _, err := applyHunks(base, hunks, DefaultResyncWindow)
	if err != nil {
		t.Fatalf("applyHunks() error: %v", err)
	}
	want := []string{"a", "mid", "a", "end"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("applyHunks() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// normalizeLine / findWithinWindow
// ---------------------------------------------------------------------------

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"trailing\r", "trailing"},
		{"\rleading", "leading"},
		{"in\rside", "inside"},
		{"  spaces kept  ", "  spaces kept  "},
		{"\ttabs kept", "\ttabs kept"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeLine(tt.in); got != tt.want {
			t.Errorf("normalizeLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindWithinWindow(t *testing.T) {
	base := []string{"a", "b", "c", "b"}

	tests := []struct {
		name   string
		from   int
		window int
		want   string
		wantAt int
	}{
		{"first match wins", 0, 10, "b", 1},
		{"scan starts at cursor", 2, 10, "b", 3},
		{"window excludes later match", 0, 1, "b", -1},
		{"no match", 0, 10, "zzz", -1},
		{"from past end", 10, 10, "a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findWithinWindow(base, tt.from, tt.window, tt.want); got != tt.wantAt {
				t.Errorf("findWithinWindow(from=%d, window=%d, %q) = %d, want %d",
					tt.from, tt.window, tt.want, got, tt.wantAt)
			}
		})
	}
}

package patch

import (
	"strings"

	pkerr "github.com/abdul-hamid-achik/patchkit/internal/errors"
)

// DefaultResyncWindow bounds how far ahead of the cursor a context or
// removal line may match. Patches are often generated against a
// slightly different revision than the one on disk; the window absorbs
// small drift without accepting arbitrarily wrong matches.
const DefaultResyncWindow = 80

// normalizeLine strips carriage returns. Matching is an exact byte
// comparison otherwise: no whitespace trimming, no tab folding.
func normalizeLine(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}

// findWithinWindow scans base[from:from+window] for the first line
// equal to want after normalization. Returns -1 when there is none.
func findWithinWindow(base []string, from, window int, want string) int {
	limit := from + window
	if limit > len(base) {
		limit = len(base)
	}
	for j := from; j < limit; j++ {
		if normalizeLine(base[j]) == want {
			return j
		}
	}
	return -1
}

// applyHunks runs one file section's accumulated hunk lines against the
// file's current line sequence. A single cursor moves forward through
// base; hunk headers carry no position information, so the cursor is
// the sole source of position truth. All-or-nothing: any mismatch
// outside the resync window fails the whole file.
func applyHunks(base, hunkLines []string, window int) ([]string, int, int, error) {
	out := make([]string, 0, len(base))
	added, removed := 0, 0
	idx := 0

	for _, line := range hunkLines {
		switch {
		case strings.HasPrefix(line, "@@"):
			// Header lines are no-ops; any offsets they carry are not trusted.

		case strings.HasPrefix(line, " "):
			want := normalizeLine(line[1:])
			j := findWithinWindow(base, idx, window, want)
			if j < 0 {
				return nil, 0, 0, pkerr.ContextMismatch(want, window)
			}
			// Lines skipped during resync are implicitly-matched context,
			// copied verbatim.
			out = append(out, base[idx:j]...)
			out = append(out, base[j])
			idx = j + 1

		case strings.HasPrefix(line, "-"):
			want := normalizeLine(line[1:])
			j := findWithinWindow(base, idx, window, want)
			if j < 0 {
				return nil, 0, 0, pkerr.RemovalMismatch(want, window)
			}
			out = append(out, base[idx:j]...)
			// The matched line is dropped.
			removed++
			idx = j + 1

		case strings.HasPrefix(line, "+"):
			out = append(out, line[1:])
			added++

		default:
			// Unrecognized tags pass through to the output, uncounted.
			out = append(out, line)
		}
	}

	// Trailing untouched content.
	out = append(out, base[idx:]...)

	return out, added, removed, nil
}

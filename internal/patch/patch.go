package patch

import (
	"fmt"
	"strings"
)

// Op identifies the kind of mutation a change performed
type Op int

const (
	OpAdd Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change records one committed mutation to one file. It is immutable
// once created; exactly one is produced per file section that reaches
// a flush.
type Change struct {
	Path    string
	Op      Op
	Added   int
	Removed int
}

// Result is the outcome of applying an entire envelope. Changes keep
// the order their file sections appeared in.
type Result struct {
	Changes []Change
}

// String renders the human-readable report, one line per change:
//
//	- update: greet.txt (+1 -1)
//
// A result with zero changes renders as the empty string; callers are
// expected to special-case that as "no changes".
func (r *Result) String() string {
	if len(r.Changes) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range r.Changes {
		fmt.Fprintf(&sb, "- %s: %s (+%d -%d)\n", c.Op, c.Path, c.Added, c.Removed)
	}
	return sb.String()
}

// TotalAdded sums added line counts across all changes.
func (r *Result) TotalAdded() int {
	total := 0
	for _, c := range r.Changes {
		total += c.Added
	}
	return total
}

// TotalRemoved sums removed line counts across all changes.
func (r *Result) TotalRemoved() int {
	total := 0
	for _, c := range r.Changes {
		total += c.Removed
	}
	return total
}

// countLines reports how many newline-delimited lines content holds.
// A trailing newline terminates the last line rather than opening an
// empty one, so "a\nb\n" counts 2.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return len(lines)
}

// joinBuffer renders full-replace buffer lines as file content with a
// trailing newline. An empty buffer renders an empty file.
func joinBuffer(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// splitEnvelopeLines splits envelope text for the line-oriented scan.
// The envelope is newline-delimited, so a final newline is a
// terminator, not an empty trailing line.
func splitEnvelopeLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

package patch

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/abdul-hamid-achik/patchkit/internal/debug"
	"github.com/abdul-hamid-achik/patchkit/internal/logger"
)

// FS is the file access surface the applier mutates. All paths are
// workspace-relative; *workspace.Workspace satisfies it.
type FS interface {
	ReadText(rel string) (string, error)
	WriteText(rel, content string) error
	Delete(rel string) error
	Move(from, to string) error
}

// Observer receives the before and after content of every flushed file
// section. Display layers use it to render diffs; the engine itself
// has no dry-run or confirmation mode, so callers wanting approval
// must gate the Apply call instead.
type Observer func(change Change, before, after string)

// Applier applies patch envelopes against an FS.
type Applier struct {
	fs       FS
	window   int
	observer Observer
}

// Option configures an Applier
type Option func(*Applier)

// WithResyncWindow overrides the forward resynchronization window.
func WithResyncWindow(n int) Option {
	return func(a *Applier) {
		if n > 0 {
			a.window = n
		}
	}
}

// WithObserver registers a callback invoked after each section flush.
func WithObserver(obs Observer) Option {
	return func(a *Applier) {
		a.observer = obs
	}
}

// New creates an Applier over the given FS
func New(fs FS, opts ...Option) *Applier {
	a := &Applier{
		fs:     fs,
		window: DefaultResyncWindow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply parses a patch envelope and applies it file section by file
// section, in envelope order. Cancellation is checked once per input
// line; an in-progress section flush always completes. Any error
// aborts the whole call with no rollback: sections flushed before the
// failure stay applied, and callers should lean on version control for
// recovery.
func (a *Applier) Apply(ctx context.Context, patchText string) (*Result, error) {
	runID := ulid.Make().String()
	lines := splitEnvelopeLines(patchText)

	logger.Debug("apply %s: envelope of %d lines, resync window %d", runID, len(lines), a.window)
	debug.ApplyStart(runID, []byte(patchText), len(lines), a.window)

	var changes []Change
	parser := &envelopeParser{}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			debug.ApplyEnd(runID, len(changes), err)
			return nil, err
		}
		sec, err := parser.feed(line)
		if err != nil {
			debug.ApplyEnd(runID, len(changes), err)
			return nil, err
		}
		change, err := a.flush(sec)
		if err != nil {
			debug.ApplyEnd(runID, len(changes), err)
			return nil, err
		}
		if change != nil {
			changes = append(changes, *change)
			debug.SectionFlush(runID, change.Op.String(), change.Path, change.Added, change.Removed)
		}
	}

	change, err := a.flush(parser.finish())
	if err != nil {
		debug.ApplyEnd(runID, len(changes), err)
		return nil, err
	}
	if change != nil {
		changes = append(changes, *change)
		debug.SectionFlush(runID, change.Op.String(), change.Path, change.Added, change.Removed)
	}

	logger.Debug("apply %s: %d change(s)", runID, len(changes))
	debug.ApplyEnd(runID, len(changes), nil)

	return &Result{Changes: changes}, nil
}

// flush commits one completed file section through the FS. Sections
// without an operation or path flush to nothing.
func (a *Applier) flush(sec *section) (*Change, error) {
	if sec == nil || sec.path == "" {
		return nil, nil
	}

	switch sec.op {
	case OpAdd:
		return a.flushAdd(sec)
	case OpUpdate:
		return a.flushUpdate(sec)
	case OpDelete:
		return a.flushDelete(sec)
	default:
		return nil, nil
	}
}

func (a *Applier) flushAdd(sec *section) (*Change, error) {
	var lines []string
	if st, ok := sec.state.(stateBuffering); ok {
		lines = st.lines
	}
	content := joinBuffer(lines)
	if err := a.fs.WriteText(sec.path, content); err != nil {
		return nil, err
	}
	change := Change{Path: sec.path, Op: OpAdd, Added: len(lines), Removed: 0}
	a.observe(change, "", content)
	return &change, nil
}

func (a *Applier) flushUpdate(sec *section) (*Change, error) {
	path := sec.path
	if sec.moveTo != "" {
		// The move happens first; everything below runs against the
		// relocated file.
		if err := a.fs.Move(sec.path, sec.moveTo); err != nil {
			return nil, err
		}
		path = sec.moveTo
	}

	if st, ok := sec.state.(stateHunks); ok {
		// Base content is loaded once, only now that hunk application
		// needs it.
		before, err := a.fs.ReadText(path)
		if err != nil {
			return nil, err
		}
		base := strings.Split(before, "\n")
		out, added, removed, err := applyHunks(base, st.lines, a.window)
		if err != nil {
			return nil, fmt.Errorf("apply hunks to %s: %w", path, err)
		}
		after := strings.Join(out, "\n")
		if err := a.fs.WriteText(path, after); err != nil {
			return nil, err
		}
		change := Change{Path: path, Op: OpUpdate, Added: added, Removed: removed}
		a.observe(change, before, after)
		return &change, nil
	}

	// Full replace: the buffer becomes the new file content; the old
	// content is read for the removed-line count only.
	var lines []string
	if st, ok := sec.state.(stateBuffering); ok {
		lines = st.lines
	}
	before, err := a.fs.ReadText(path)
	if err != nil {
		return nil, err
	}
	after := joinBuffer(lines)
	if err := a.fs.WriteText(path, after); err != nil {
		return nil, err
	}
	change := Change{Path: path, Op: OpUpdate, Added: len(lines), Removed: countLines(before)}
	a.observe(change, before, after)
	return &change, nil
}

func (a *Applier) flushDelete(sec *section) (*Change, error) {
	// Read first: a delete of a missing file is NotFound, and the old
	// content supplies the removed-line count.
	before, err := a.fs.ReadText(sec.path)
	if err != nil {
		return nil, err
	}
	if err := a.fs.Delete(sec.path); err != nil {
		return nil, err
	}
	change := Change{Path: sec.path, Op: OpDelete, Added: 0, Removed: countLines(before)}
	a.observe(change, before, "")
	return &change, nil
}

func (a *Applier) observe(change Change, before, after string) {
	if a.observer != nil {
		a.observer(change, before, after)
	}
}

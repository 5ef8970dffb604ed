package patch

import (
	"strings"

	pkerr "github.com/abdul-hamid-achik/patchkit/internal/errors"
)

// Envelope directive markers. Matching is by literal line prefix with
// no tolerance for alternate spacing or casing.
const (
	beginPatchMarker = "*** Begin Patch"
	endPatchMarker   = "*** End Patch"
	addFilePrefix    = "*** Add File: "
	updateFilePrefix = "*** Update File: "
	deleteFilePrefix = "*** Delete File: "
	moveToPrefix     = "*** Move to: "
)

// sectionState is the content mode of an open file section: pending
// until the first content-bearing line, then full-replace buffering or
// hunk accumulation.
type sectionState interface {
	sectionState()
}

type statePending struct{}

type stateBuffering struct {
	lines []string
}

type stateHunks struct {
	lines []string
}

func (statePending) sectionState()   {}
func (stateBuffering) sectionState() {}
func (stateHunks) sectionState()     {}

// section is the transient parse state between one file directive and
// the next. It is flushed and discarded at each transition.
type section struct {
	op     Op
	path   string
	moveTo string
	state  sectionState
}

func newSection(op Op, path string) *section {
	return &section{op: op, path: path, state: statePending{}}
}

// routeContent advances a section's content state by one envelope line.
// Pure: no I/O, returns the successor state or an error. A hunk header
// switches into hunk accumulation (an error for Add sections, which
// take full content only); before that, '+' and ' ' lines buffer as
// full-replace body with the tag stripped, treated identically. Inside
// hunk accumulation every line buffers verbatim.
func routeContent(op Op, path string, st sectionState, line string) (sectionState, error) {
	if s, ok := st.(stateHunks); ok {
		return stateHunks{lines: append(s.lines, line)}, nil
	}

	if strings.HasPrefix(line, "@@") {
		if op == OpAdd {
			return st, pkerr.UnsupportedOperation(path)
		}
		return stateHunks{lines: []string{line}}, nil
	}

	if strings.HasPrefix(line, "+") || strings.HasPrefix(line, " ") {
		var buf []string
		if s, ok := st.(stateBuffering); ok {
			buf = s.lines
		}
		return stateBuffering{lines: append(buf, line[1:])}, nil
	}

	// Anything else before a hunk header is skipped.
	return st, nil
}

// envelopeParser scans envelope lines and hands back completed file
// sections for the orchestrator to flush. It performs no I/O.
type envelopeParser struct {
	current *section
	done    bool
}

// feed consumes one envelope line. When the line closes a section (a
// new file directive or the end marker), that section is returned for
// flushing.
func (p *envelopeParser) feed(line string) (*section, error) {
	if p.done {
		// Anything after the end marker is ignored.
		return nil, nil
	}

	switch {
	case strings.HasPrefix(line, endPatchMarker):
		p.done = true
		return p.take(), nil

	case strings.HasPrefix(line, beginPatchMarker):
		return nil, nil

	case strings.HasPrefix(line, addFilePrefix):
		flush := p.take()
		p.current = newSection(OpAdd, directivePath(line, addFilePrefix))
		return flush, nil

	case strings.HasPrefix(line, updateFilePrefix):
		flush := p.take()
		p.current = newSection(OpUpdate, directivePath(line, updateFilePrefix))
		return flush, nil

	case strings.HasPrefix(line, deleteFilePrefix):
		flush := p.take()
		p.current = newSection(OpDelete, directivePath(line, deleteFilePrefix))
		return flush, nil

	case strings.HasPrefix(line, moveToPrefix):
		// Sets the rename target on the open section; only Update
		// consults it at flush time.
		if p.current != nil {
			p.current.moveTo = directivePath(line, moveToPrefix)
		}
		return nil, nil
	}

	if p.current == nil {
		// Outside any section.
		return nil, nil
	}

	next, err := routeContent(p.current.op, p.current.path, p.current.state, line)
	if err != nil {
		return nil, err
	}
	p.current.state = next
	return nil, nil
}

// finish returns the trailing section still open at end of input.
func (p *envelopeParser) finish() *section {
	if p.done {
		return nil
	}
	return p.take()
}

func (p *envelopeParser) take() *section {
	s := p.current
	p.current = nil
	return s
}

// directivePath extracts the path operand of a directive line. A
// trailing carriage return from CRLF envelopes is dropped.
func directivePath(line, prefix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(line, prefix), "\r")
}

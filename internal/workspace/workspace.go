package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	pkerr "github.com/abdul-hamid-achik/patchkit/internal/errors"
)

// Mode defines the sandbox permission mode
type Mode int

const (
	ModeReadOnly       Mode = iota // No mutations allowed
	ModeWorkspaceWrite             // Mutations inside the root allowed
	ModeFullAccess                 // Like workspace-write; the distinction matters to shell guards, not file I/O
)

func (m Mode) String() string {
	switch m {
	case ModeReadOnly:
		return "read-only"
	case ModeWorkspaceWrite:
		return "workspace-write"
	case ModeFullAccess:
		return "full-access"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "read-only":
		return ModeReadOnly, nil
	case "workspace-write":
		return ModeWorkspaceWrite, nil
	case "full-access":
		return ModeFullAccess, nil
	default:
		return ModeReadOnly, fmt.Errorf("unknown sandbox mode %q (want read-only, workspace-write or full-access)", s)
	}
}

// Workspace mediates all file access through a sandbox root.
// Relative paths are resolved against the root and may not escape it,
// in any mode. The mode only gates mutations.
type Workspace struct {
	root string
	mode Mode
}

// New creates a Workspace rooted at the given directory.
// The root must exist; it is resolved through symlinks once so that
// later containment checks compare canonical paths.
func New(root string, mode Mode) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid sandbox root %q: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve sandbox root %q: %w", root, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("cannot stat sandbox root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sandbox root %q is not a directory", root)
	}
	return &Workspace{root: resolved, mode: mode}, nil
}

// Root returns the resolved sandbox root
func (w *Workspace) Root() string {
	return w.root
}

// Mode returns the sandbox mode
func (w *Workspace) Mode() Mode {
	return w.mode
}

// ReadText returns the contents of a file inside the sandbox.
// Reads are legal in every mode.
func (w *Workspace) ReadText(rel string) (string, error) {
	abs, err := w.resolve(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", pkerr.NotFound(rel, err)
		}
		return "", fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return string(data), nil
}

// WriteText writes content to a file inside the sandbox,
// creating parent directories as needed.
func (w *Workspace) WriteText(rel, content string) error {
	abs, err := w.resolve(rel)
	if err != nil {
		return err
	}
	if w.mode == ModeReadOnly {
		return pkerr.ReadOnlyViolation("write", rel)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", rel, err)
	}
	f, err := w.openNoFollow(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", rel, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", rel, err)
	}
	return nil
}

// Delete removes a file inside the sandbox. Deleting an absent file is a no-op.
func (w *Workspace) Delete(rel string) error {
	abs, err := w.resolve(rel)
	if err != nil {
		return err
	}
	if w.mode == ModeReadOnly {
		return pkerr.ReadOnlyViolation("delete", rel)
	}
	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", rel, err)
	}
	return nil
}

// Move renames a file inside the sandbox, creating target parent
// directories and overwriting the destination if present.
func (w *Workspace) Move(from, to string) error {
	absFrom, err := w.resolve(from)
	if err != nil {
		return err
	}
	absTo, err := w.resolve(to)
	if err != nil {
		return err
	}
	if w.mode == ModeReadOnly {
		return pkerr.ReadOnlyViolation("move", from)
	}
	if err := os.MkdirAll(filepath.Dir(absTo), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", to, err)
	}
	if err := os.Rename(absFrom, absTo); err != nil {
		if os.IsNotExist(err) {
			return pkerr.NotFound(from, err)
		}
		return fmt.Errorf("failed to move %s to %s: %w", from, to, err)
	}
	return nil
}

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pkerr "github.com/abdul-hamid-achik/patchkit/internal/errors"
)

// resolve validates a workspace-relative path and returns its absolute,
// symlink-resolved form. Absolute inputs and paths whose resolved form
// leaves the root are rejected before any I/O happens.
func (w *Workspace) resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", pkerr.OutOfBounds(rel)
	}

	// Join cleans the path, collapsing any . and .. components
	cleaned := filepath.Join(w.root, rel)

	resolved, err := resolveExistingPath(cleaned)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", rel, err)
	}

	if !isWithinRoot(resolved, w.root) {
		return "", pkerr.OutOfBounds(rel)
	}

	return resolved, nil
}

// resolveExistingPath resolves a path by finding the deepest existing ancestor,
// fully resolving it via EvalSymlinks, then appending the non-existent tail.
// This handles macOS firmlinks (e.g., /var → /private/var) and regular symlinks.
func resolveExistingPath(path string) (string, error) {
	// Start from the full path and walk up until we find something that exists
	current := path
	var tailParts []string

	for {
		_, err := os.Lstat(current)
		if err == nil {
			// This part exists — fully resolve it (handles symlinks, firmlinks, etc.)
			resolved, err := filepath.EvalSymlinks(current)
			if err != nil {
				return "", fmt.Errorf("cannot resolve path %q: %w", current, err)
			}
			// Append the non-existent tail parts
			for i := len(tailParts) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tailParts[i])
			}
			return filepath.Clean(resolved), nil
		}

		if !os.IsNotExist(err) {
			return "", err
		}

		// This component doesn't exist; remember it and try the parent
		parent := filepath.Dir(current)
		if parent == current {
			// We've reached the root without finding anything
			return filepath.Clean(path), nil
		}
		tailParts = append(tailParts, filepath.Base(current))
		current = parent
	}
}

// isWithinRoot checks if path is within or equal to root.
func isWithinRoot(path, root string) bool {
	// Exact match
	if path == root {
		return true
	}
	// Must have the root as prefix followed by a separator
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

//go:build windows

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// openNoFollow opens a file for writing on Windows where O_NOFOLLOW is not available.
// We still perform post-open validation to mitigate symlink swaps.
func (w *Workspace) openNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("post-open path resolution failed: %w", err)
	}

	if !isWithinRoot(realPath, w.root) {
		f.Close()
		return nil, fmt.Errorf("file %q resolved outside the sandbox after open", path)
	}

	return f, nil
}

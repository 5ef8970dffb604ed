package errors

import "fmt"

// OutOfBounds creates an error for a path that is absolute or escapes the sandbox root.
func OutOfBounds(path string) *PatchError {
	return &PatchError{
		Category: CategorySandbox,
		Code:     CodeOutOfBounds,
		Message:  fmt.Sprintf("path %q resolves outside the sandbox root", path),
		Path:     path,
	}
}

// ReadOnlyViolation creates an error for a mutation attempted in read-only mode.
func ReadOnlyViolation(op, path string) *PatchError {
	return &PatchError{
		Category: CategorySandbox,
		Code:     CodeReadOnlyViolation,
		Message:  fmt.Sprintf("cannot %s %q: sandbox is read-only", op, path),
		Path:     path,
	}
}

// NotFound creates an error for reading or moving a file that does not exist.
func NotFound(path string, cause error) *PatchError {
	return &PatchError{
		Category: CategoryWorkspace,
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("file %q does not exist", path),
		Path:     path,
		Cause:    cause,
	}
}

// UnsupportedOperation creates an error for a hunk header inside an Add File section.
func UnsupportedOperation(path string) *PatchError {
	return &PatchError{
		Category: CategoryEnvelope,
		Code:     CodeUnsupportedOperation,
		Message:  fmt.Sprintf("cannot apply hunks to newly added file %q", path),
		Path:     path,
	}
}

// ContextMismatch creates an error for a context line with no match inside the resync window.
func ContextMismatch(line string, window int) *PatchError {
	return &PatchError{
		Category: CategoryHunk,
		Code:     CodeContextMismatch,
		Message:  fmt.Sprintf("context line %q not found within %d lines", line, window),
	}
}

// RemovalMismatch creates an error for a removal line with no match inside the resync window.
func RemovalMismatch(line string, window int) *PatchError {
	return &PatchError{
		Category: CategoryHunk,
		Code:     CodeRemovalMismatch,
		Message:  fmt.Sprintf("removal line %q not found within %d lines", line, window),
	}
}

// ConfigLoadFailed creates an error for when configuration loading fails.
func ConfigLoadFailed(path string, cause error) *PatchError {
	return &PatchError{
		Category: CategoryConfig,
		Code:     CodeConfigLoadFailed,
		Message:  fmt.Sprintf("failed to load config from %q", path),
		Path:     path,
		Cause:    cause,
	}
}

// ToolInvalidInput creates an error for tool arguments that fail schema validation.
func ToolInvalidInput(name string, cause error) *PatchError {
	return &PatchError{
		Category: CategoryTool,
		Code:     CodeToolInvalidInput,
		Message:  fmt.Sprintf("invalid input for tool %q", name),
		Cause:    cause,
	}
}

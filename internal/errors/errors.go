package errors

import (
	"errors"
	"fmt"
)

// Category groups errors by subsystem
type Category string

const (
	CategorySandbox   Category = "sandbox"
	CategoryWorkspace Category = "workspace"
	CategoryEnvelope  Category = "envelope"
	CategoryHunk      Category = "hunk"
	CategoryConfig    Category = "config"
	CategoryTool      Category = "tool"
)

// Error codes for the patch-application taxonomy
const (
	CodeOutOfBounds          = "out_of_bounds"
	CodeReadOnlyViolation    = "read_only_violation"
	CodeNotFound             = "not_found"
	CodeUnsupportedOperation = "unsupported_operation"
	CodeContextMismatch      = "context_mismatch"
	CodeRemovalMismatch      = "removal_mismatch"
	CodeConfigLoadFailed     = "config_load_failed"
	CodeToolInvalidInput     = "tool_invalid_input"
)

// PatchError is the structured error type for the project
type PatchError struct {
	Category Category
	Code     string
	Message  string
	Path     string // workspace-relative path involved, if any
	Cause    error
}

func (e *PatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

func (e *PatchError) Unwrap() error {
	return e.Cause
}

func (e *PatchError) Is(target error) bool {
	t, ok := target.(*PatchError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Category == t.Category
}

// GetCategory extracts the error category from a PatchError.
// Returns an empty Category for nil errors or non-PatchError types.
func GetCategory(err error) Category {
	var pe *PatchError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ""
}

// GetCode extracts the error code from a PatchError.
// Returns an empty string for nil errors or non-PatchError types.
func GetCode(err error) string {
	var pe *PatchError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// GetPath returns the workspace path an error refers to, if one was recorded.
func GetPath(err error) string {
	var pe *PatchError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return ""
}

// GetUserMessage returns a user-friendly message for the error.
// For PatchError it returns the Message field; for other errors it returns Error().
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *PatchError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

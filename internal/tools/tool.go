package tools

import "context"

// PermissionLevel defines the level of permission required for a tool
type PermissionLevel int

const (
	PermissionRead    PermissionLevel = 0 // Read-only operations
	PermissionWrite   PermissionLevel = 1 // File modifications
	PermissionExecute PermissionLevel = 2 // Shell execution
)

func (p PermissionLevel) String() string {
	switch p {
	case PermissionRead:
		return "read"
	case PermissionWrite:
		return "write"
	case PermissionExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// Tool defines the interface all tools must implement. Agent shells
// embedding the patch engine surface these over their own function
// calling protocol.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]any
	Execute(ctx context.Context, input map[string]any) (string, error)
	Permission() PermissionLevel
}

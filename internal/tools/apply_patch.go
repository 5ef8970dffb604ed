package tools

import (
	"context"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	pkerr "github.com/abdul-hamid-achik/patchkit/internal/errors"
	"github.com/abdul-hamid-achik/patchkit/internal/patch"
)

// ApplyPatchTool applies a patch envelope to the workspace
type ApplyPatchTool struct {
	applier *patch.Applier
	schema  *jsonschema.Schema
}

// NewApplyPatchTool wraps an applier for exposure as a tool. The input
// schema is compiled once here so malformed calls fail fast at
// execution time.
func NewApplyPatchTool(applier *patch.Applier) (*ApplyPatchTool, error) {
	t := &ApplyPatchTool{applier: applier}
	schema, err := compileSchema(t.InputSchema())
	if err != nil {
		return nil, fmt.Errorf("compile apply_patch schema: %w", err)
	}
	t.schema = schema
	return t, nil
}

func (t *ApplyPatchTool) Name() string {
	return "apply_patch"
}

func (t *ApplyPatchTool) Description() string {
	return "Apply a patch to files in the workspace. The patch is a text envelope " +
		"starting with '*** Begin Patch' and ending with '*** End Patch', containing " +
		"one or more '*** Add File: path', '*** Update File: path', or '*** Delete File: path' " +
		"sections. Update sections hold either '@@' hunks with ' ' context, '-' removal " +
		"and '+' insertion lines, or a full replacement body of '+' lines, and may carry " +
		"a '*** Move to: path' rename."
}

func (t *ApplyPatchTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"patch": map[string]any{
				"type":        "string",
				"description": "The full patch envelope, including the Begin Patch and End Patch markers.",
			},
		},
		"required": []string{"patch"},
	}
}

func (t *ApplyPatchTool) Permission() PermissionLevel {
	return PermissionWrite
}

func (t *ApplyPatchTool) Execute(ctx context.Context, input map[string]any) (string, error) {
	if err := t.schema.Validate(input); err != nil {
		return "", pkerr.ToolInvalidInput(t.Name(), err)
	}

	patchText, ok := input["patch"].(string)
	if !ok || patchText == "" {
		return "", pkerr.ToolInvalidInput(t.Name(), fmt.Errorf("patch is required"))
	}

	result, err := t.applier.Apply(ctx, patchText)
	if err != nil {
		return "", err
	}

	if len(result.Changes) == 0 {
		return "no changes", nil
	}
	return result.String(), nil
}

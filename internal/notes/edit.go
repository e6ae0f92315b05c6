package notes

import (
	"context"
	"fmt"

	"notesmcp/internal/catalog"
)

// EditTool replaces the full body of a note found by exact name. There
// is no merge or patch semantics; first match wins on name collisions.
type EditTool struct {
	runner Runner
}

func NewEditTool(runner Runner) *EditTool {
	return &EditTool{runner: runner}
}

func (t *EditTool) Name() string { return "edit_note" }

func (t *EditTool) Description() string {
	return "Edit an existing note's content"
}

func (t *EditTool) Parameters() map[string]any {
	return catalog.ToolParameters(
		map[string]catalog.Param{
			"name": {Type: "string", Description: "The name/title of the note to edit"},
			"body": {Type: "string", Description: "The new content for the note"},
		},
		[]string{"name", "body"},
	)
}

func (t *EditTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	name := catalog.ArgsString(args, "name")
	if name == "" {
		return "", fmt.Errorf("missing argument: name")
	}
	body, ok := args["body"].(string)
	if !ok {
		return "", fmt.Errorf("missing argument: body")
	}

	out, err := t.runner.RunAppleScript(ctx, EditScript(name, body))
	if err != nil {
		return fmt.Sprintf("Error editing note: %s", err), nil
	}
	return out, nil
}

package notes

import (
	"context"
	"fmt"

	"notesmcp/internal/catalog"
)

// ReadTool returns the full body of a note found by exact name. When
// several notes share the name, the first match wins.
type ReadTool struct {
	runner Runner
}

func NewReadTool(runner Runner) *ReadTool {
	return &ReadTool{runner: runner}
}

func (t *ReadTool) Name() string { return "read_note" }

func (t *ReadTool) Description() string {
	return "Read the full content of a specific note by name"
}

func (t *ReadTool) Parameters() map[string]any {
	return catalog.ToolParameters(
		map[string]catalog.Param{
			"name": {Type: "string", Description: "The name/title of the note to read"},
		},
		[]string{"name"},
	)
}

func (t *ReadTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	name := catalog.ArgsString(args, "name")
	if name == "" {
		return "", fmt.Errorf("missing argument: name")
	}

	out, err := t.runner.RunAppleScript(ctx, ReadScript(name))
	if err != nil {
		return fmt.Sprintf("Error reading note: %s", err), nil
	}

	if out == notFoundSentinel {
		return notFoundSentinel, nil
	}
	return fmt.Sprintf("Note: %s\n\n%s", name, out), nil
}

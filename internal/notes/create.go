package notes

import (
	"context"
	"fmt"

	"notesmcp/internal/catalog"
)

// CreateTool creates a new note inside an existing folder of the
// configured account. The folder is never created implicitly: a missing
// folder surfaces the interpreter failure.
type CreateTool struct {
	runner Runner
	cfg    Config
}

func NewCreateTool(runner Runner, cfg Config) *CreateTool {
	return &CreateTool{runner: runner, cfg: cfg.withDefaults()}
}

func (t *CreateTool) Name() string { return "create_note" }

func (t *CreateTool) Description() string {
	return "Create a new note with specified content"
}

func (t *CreateTool) Parameters() map[string]any {
	return catalog.ToolParameters(
		map[string]catalog.Param{
			"name":   {Type: "string", Description: "The title of the new note"},
			"body":   {Type: "string", Description: "The content of the new note"},
			"folder": {Type: "string", Description: "Optional: folder to create the note in (defaults to 'Notes')"},
		},
		[]string{"name", "body"},
	)
}

func (t *CreateTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	name := catalog.ArgsString(args, "name")
	if name == "" {
		return "", fmt.Errorf("missing argument: name")
	}
	body, ok := args["body"].(string)
	if !ok {
		return "", fmt.Errorf("missing argument: body")
	}
	folder := catalog.ArgsString(args, "folder")
	if folder == "" {
		folder = t.cfg.DefaultFolder
	}

	out, err := t.runner.RunAppleScript(ctx, CreateScript(t.cfg.Account, folder, name, body))
	if err != nil {
		return fmt.Sprintf("Error creating note: %s", err), nil
	}
	return fmt.Sprintf("Successfully created note: %s", out), nil
}

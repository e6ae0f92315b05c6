package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"notesmcp/internal/catalog"
	"notesmcp/internal/domain"
)

// ListTool lists notes with their folders and timestamps. The optional
// folder argument filters the listing and is echoed in the header.
type ListTool struct {
	runner Runner
}

func NewListTool(runner Runner) *ListTool {
	return &ListTool{runner: runner}
}

func (t *ListTool) Name() string { return "list_notes" }

func (t *ListTool) Description() string {
	return "List all notes with their names, folders, and creation/modification dates"
}

func (t *ListTool) Parameters() map[string]any {
	return catalog.ToolParameters(
		map[string]catalog.Param{
			"folder": {Type: "string", Description: "Optional: filter by folder name"},
		},
		nil,
	)
}

func (t *ListTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	folder := catalog.ArgsString(args, "folder")

	out, err := t.runner.RunJXA(ctx, ListScript(folder))
	if err != nil {
		return fmt.Sprintf("Error listing notes: %s", err), nil
	}

	var infos []domain.NoteInfo
	if out != "" {
		if err := json.Unmarshal([]byte(out), &infos); err != nil {
			return fmt.Sprintf("Error listing notes: malformed listing output: %s", err), nil
		}
	}

	header := "All notes:"
	if folder != "" {
		header = fmt.Sprintf("Notes in folder '%s':", folder)
	}

	if len(infos) == 0 {
		return header + "\n(no notes)", nil
	}

	var b strings.Builder
	b.WriteString(header)
	for _, n := range infos {
		fmt.Fprintf(&b, "\n• %s (in %s), modified %s", n.Name, n.Folder, n.Modified)
	}
	return b.String(), nil
}

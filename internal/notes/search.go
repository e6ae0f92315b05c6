package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"notesmcp/internal/catalog"
	"notesmcp/internal/domain"
)

const previewLimit = 100

// SearchTool searches notes by case-insensitive substring in title or
// body. The match runs inside the script; the gateway only decodes and
// formats the structured result.
type SearchTool struct {
	runner Runner
}

func NewSearchTool(runner Runner) *SearchTool {
	return &SearchTool{runner: runner}
}

func (t *SearchTool) Name() string { return "search_notes" }

func (t *SearchTool) Description() string {
	return "Search notes by text in title or body"
}

func (t *SearchTool) Parameters() map[string]any {
	return catalog.ToolParameters(
		map[string]catalog.Param{
			"query": {Type: "string", Description: "Search query to find in note titles or content"},
		},
		[]string{"query"},
	)
}

func (t *SearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query := catalog.ArgsString(args, "query")
	if query == "" {
		return "", fmt.Errorf("missing argument: query")
	}

	out, err := t.runner.RunJXA(ctx, SearchScript(query))
	if err != nil {
		return fmt.Sprintf("Error searching notes: %s", err), nil
	}

	var matches []domain.SearchMatch
	if out != "" {
		if err := json.Unmarshal([]byte(out), &matches); err != nil {
			return fmt.Sprintf("Error searching notes: malformed search output: %s", err), nil
		}
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No notes found matching '%s'", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d note(s) matching '%s':\n", len(matches), query)
	for _, m := range matches {
		preview := m.Preview
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}
		fmt.Fprintf(&b, "\n• %s (in %s)\n  Preview: %s...\n", m.Name, m.Folder, preview)
	}
	return b.String(), nil
}

package domain

import "context"

// Tool is the interface for note operations exposed over MCP
// (list, search, read, create, edit).
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// ToolDefinition is the wire-facing descriptor of a tool: its name,
// human-readable description, and JSON-Schema-shaped parameter object.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"inputSchema"`
}

package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer builds the MCP server with every cataloged tool registered.
// Parameter schemas pass through as raw JSON Schema; the catalog already
// shaped them.
func (g *Gateway) MCPServer(name, version string) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, def := range g.Definitions() {
		schema, _ := json.Marshal(def.Parameters)
		s.AddTool(
			mcp.NewToolWithRawSchema(def.Name, def.Description, schema),
			g.toolHandler(def.Name),
		)
	}
	return s
}

func (g *Gateway) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := g.Call(ctx, name, req.GetArguments())
		return mcp.NewToolResultText(text), nil
	}
}

// ServeStdio blocks serving MCP over stdin/stdout. Requests arrive
// sequentially; stdout carries only protocol frames, so all logging goes
// to stderr.
func (g *Gateway) ServeStdio(name, version string) error {
	return server.ServeStdio(g.MCPServer(name, version))
}

// Package catalog holds the fixed set of tools the gateway exposes.
// The catalog is built once at startup and never mutated afterwards.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"notesmcp/internal/domain"
)

// Catalog is an immutable name-to-tool lookup table.
type Catalog struct {
	tools  map[string]domain.Tool
	names  []string // preserves registration order for stable listings
	logger *slog.Logger
}

// New builds a catalog from the given tools. Later tools with a
// duplicate name replace earlier ones.
func New(logger *slog.Logger, tools ...domain.Tool) *Catalog {
	c := &Catalog{
		tools:  make(map[string]domain.Tool, len(tools)),
		logger: logger,
	}
	for _, t := range tools {
		if _, exists := c.tools[t.Name()]; !exists {
			c.names = append(c.names, t.Name())
		}
		c.tools[t.Name()] = t
		logger.Debug("cataloged tool", "name", t.Name())
	}
	return c
}

// Get returns the tool with the given name, or nil.
func (c *Catalog) Get(name string) domain.Tool {
	return c.tools[name]
}

// Names returns the tool names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Definitions returns the descriptors of every tool, in registration order.
func (c *Catalog) Definitions() []domain.ToolDefinition {
	defs := make([]domain.ToolDefinition, 0, len(c.names))
	for _, name := range c.names {
		t := c.tools[name]
		defs = append(defs, domain.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Execute dispatches an invocation by tool name.
func (c *Catalog) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	t := c.Get(name)
	if t == nil {
		return "", fmt.Errorf("Unknown tool: %s (available: %v)", name, c.Names())
	}
	return t.Execute(ctx, args)
}

// Param describes a single tool parameter.
type Param struct {
	Type        string
	Description string
}

// ToolParameters builds a JSON Schema "parameters" object for a tool.
func ToolParameters(properties map[string]Param, required []string) map[string]any {
	props := make(map[string]any)
	for name, p := range properties {
		props[name] = map[string]any{"type": p.Type, "description": p.Description}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ArgsString extracts a string argument, JSON-encoding non-string values.
func ArgsString(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	v, ok := args[key]
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

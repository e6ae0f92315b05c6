package catalog

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"notesmcp/internal/domain"
)

// stubTool is a minimal tool for testing the catalog.
type stubTool struct {
	name   string
	result string
	err    error
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub: " + s.name }
func (s *stubTool) Parameters() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}
func (s *stubTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	return s.result, s.err
}

var _ domain.Tool = (*stubTool)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCatalog_Get(t *testing.T) {
	c := New(testLogger(), &stubTool{name: "test_tool", result: "ok"})

	got := c.Get("test_tool")
	if got == nil {
		t.Fatal("expected to find cataloged tool")
	}
	if got.Name() != "test_tool" {
		t.Fatalf("expected 'test_tool', got %q", got.Name())
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	c := New(testLogger())
	if got := c.Get("nonexistent"); got != nil {
		t.Fatal("expected nil for unknown tool")
	}
}

func TestCatalog_Execute(t *testing.T) {
	c := New(testLogger(), &stubTool{name: "echo", result: "hello"})

	result, err := c.Execute(context.Background(), "echo", nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result != "hello" {
		t.Fatalf("expected 'hello', got %q", result)
	}
}

func TestCatalog_ExecuteUnknown(t *testing.T) {
	c := New(testLogger(), &stubTool{name: "echo"})

	_, err := c.Execute(context.Background(), "missing", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if !strings.Contains(err.Error(), "Unknown tool") {
		t.Fatalf("expected 'Unknown tool' in message, got %q", err.Error())
	}
}

func TestCatalog_NamesPreserveOrder(t *testing.T) {
	c := New(testLogger(),
		&stubTool{name: "alpha"},
		&stubTool{name: "beta"},
		&stubTool{name: "gamma"},
	)

	names := c.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(names))
	}
	if names[0] != "alpha" || names[1] != "beta" || names[2] != "gamma" {
		t.Fatalf("expected registration order, got %v", names)
	}
}

func TestCatalog_Definitions(t *testing.T) {
	c := New(testLogger(), &stubTool{name: "tool1"}, &stubTool{name: "tool2"})

	defs := c.Definitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	if defs[0].Name != "tool1" || defs[1].Name != "tool2" {
		t.Fatalf("unexpected definition order: %v", defs)
	}
	if defs[0].Description != "stub: tool1" {
		t.Fatalf("unexpected description: %q", defs[0].Description)
	}
}

func TestCatalog_DuplicateNameReplaces(t *testing.T) {
	c := New(testLogger(),
		&stubTool{name: "dup", result: "v1"},
		&stubTool{name: "dup", result: "v2"},
	)

	result, _ := c.Execute(context.Background(), "dup", nil)
	if result != "v2" {
		t.Fatalf("expected later tool to win, got %q", result)
	}
	if len(c.Names()) != 1 {
		t.Fatalf("duplicate must not add a second name: %v", c.Names())
	}
}

// --- ToolParameters ---

func TestToolParameters_WithRequired(t *testing.T) {
	params := ToolParameters(
		map[string]Param{
			"name": {Type: "string", Description: "The name"},
			"age":  {Type: "number", Description: "The age in years"},
		},
		[]string{"name"},
	)

	if params["type"] != "object" {
		t.Fatal("expected type=object")
	}
	props := params["properties"].(map[string]any)
	if len(props) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(props))
	}

	nameParam := props["name"].(map[string]any)
	if nameParam["description"] != "The name" {
		t.Fatalf("expected 'The name', got %q", nameParam["description"])
	}

	required := params["required"].([]string)
	if len(required) != 1 || required[0] != "name" {
		t.Fatalf("unexpected required: %v", required)
	}
}

func TestToolParameters_NoRequired(t *testing.T) {
	params := ToolParameters(
		map[string]Param{
			"folder": {Type: "string", Description: "Folder filter"},
		},
		nil,
	)
	if _, ok := params["required"]; ok {
		t.Fatal("should not have 'required' key when nil")
	}
}

// --- ArgsString ---

func TestArgsString_StringValue(t *testing.T) {
	args := map[string]any{"key": "value"}
	if got := ArgsString(args, "key"); got != "value" {
		t.Fatalf("expected 'value', got %q", got)
	}
}

func TestArgsString_MissingKey(t *testing.T) {
	args := map[string]any{"other": "value"}
	if got := ArgsString(args, "key"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestArgsString_NilArgs(t *testing.T) {
	if got := ArgsString(nil, "key"); got != "" {
		t.Fatalf("expected empty for nil args, got %q", got)
	}
}

func TestArgsString_NonStringValue(t *testing.T) {
	args := map[string]any{"num": 42.0}
	if got := ArgsString(args, "num"); got == "" {
		t.Fatal("expected non-empty for numeric value")
	}
}

package notes

import (
	"context"
	"strings"
	"testing"

	"notesmcp/internal/osascript"
)

// stubRunner fakes the osascript interpreter and records the last script.
type stubRunner struct {
	appleOut string
	appleErr error
	jxaOut   string
	jxaErr   error

	lastDialect string
	lastScript  string
}

func (s *stubRunner) RunAppleScript(ctx context.Context, script string) (string, error) {
	s.lastDialect = "applescript"
	s.lastScript = script
	return s.appleOut, s.appleErr
}

func (s *stubRunner) RunJXA(ctx context.Context, script string) (string, error) {
	s.lastDialect = "jxa"
	s.lastScript = script
	return s.jxaOut, s.jxaErr
}

func execErr(stderr string) error {
	return &osascript.ScriptError{Kind: osascript.KindExec, ExitCode: 1, Stderr: stderr}
}

// --- list_notes ---

func TestListTool_AllNotes(t *testing.T) {
	r := &stubRunner{jxaOut: `[{"name":"A","folder":"Notes","created":"c1","modified":"m1"}]`}
	out, err := NewListTool(r).Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "All notes:") {
		t.Fatalf("expected all-notes header, got %q", out)
	}
	if !strings.Contains(out, "• A (in Notes)") {
		t.Fatalf("expected note line, got %q", out)
	}
	if r.lastDialect != "jxa" {
		t.Fatalf("list must use the structured dialect, got %s", r.lastDialect)
	}
}

func TestListTool_FolderHeader(t *testing.T) {
	r := &stubRunner{jxaOut: `[]`}
	out, err := NewListTool(r).Execute(context.Background(), map[string]any{"folder": "Work"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "Notes in folder 'Work':") {
		t.Fatalf("expected folder header, got %q", out)
	}
	if !strings.Contains(r.lastScript, `"Work"`) {
		t.Fatalf("folder must reach the script, got:\n%s", r.lastScript)
	}
}

func TestListTool_Empty(t *testing.T) {
	r := &stubRunner{jxaOut: `[]`}
	out, _ := NewListTool(r).Execute(context.Background(), nil)
	if !strings.Contains(out, "(no notes)") {
		t.Fatalf("expected empty marker, got %q", out)
	}
}

func TestListTool_ScriptError(t *testing.T) {
	r := &stubRunner{jxaErr: execErr("Notes got an error")}
	out, err := NewListTool(r).Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("script failures must map to text, got error: %v", err)
	}
	if !strings.HasPrefix(out, "Error listing notes:") {
		t.Fatalf("expected error text, got %q", out)
	}
	if !strings.Contains(out, "Notes got an error") {
		t.Fatalf("expected diagnostics embedded, got %q", out)
	}
}

func TestListTool_MalformedOutput(t *testing.T) {
	r := &stubRunner{jxaOut: `{not json`}
	out, err := NewListTool(r).Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("parse failures must map to text, got error: %v", err)
	}
	if !strings.Contains(out, "malformed listing output") {
		t.Fatalf("expected parse error text, got %q", out)
	}
}

// --- search_notes ---

func TestSearchTool_NoResults(t *testing.T) {
	r := &stubRunner{jxaOut: `[]`}
	out, err := NewSearchTool(r).Execute(context.Background(), map[string]any{"query": "zzz_no_such_token"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "No notes found matching 'zzz_no_such_token'" {
		t.Fatalf("expected no-results message, got %q", out)
	}
}

func TestSearchTool_Matches(t *testing.T) {
	r := &stubRunner{jxaOut: `[{"name":"Shopping","folder":"Notes","preview":"milk, eggs"}]`}
	out, err := NewSearchTool(r).Execute(context.Background(), map[string]any{"query": "milk"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "Found 1 note(s) matching 'milk':") {
		t.Fatalf("expected match header, got %q", out)
	}
	if !strings.Contains(out, "• Shopping (in Notes)") {
		t.Fatalf("expected match line, got %q", out)
	}
	if !strings.Contains(out, "Preview: milk, eggs...") {
		t.Fatalf("expected preview, got %q", out)
	}
}

func TestSearchTool_PreviewTruncated(t *testing.T) {
	long := strings.Repeat("x", 250)
	r := &stubRunner{jxaOut: `[{"name":"N","folder":"F","preview":"` + long + `"}]`}
	out, _ := NewSearchTool(r).Execute(context.Background(), map[string]any{"query": "x"})
	if strings.Contains(out, strings.Repeat("x", previewLimit+1)) {
		t.Fatalf("preview must be capped at %d chars", previewLimit)
	}
}

func TestSearchTool_MissingQuery(t *testing.T) {
	r := &stubRunner{}
	_, err := NewSearchTool(r).Execute(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for missing query")
	}
}

func TestSearchTool_MalformedOutput(t *testing.T) {
	r := &stubRunner{jxaOut: `not json at all`}
	out, err := NewSearchTool(r).Execute(context.Background(), map[string]any{"query": "q"})
	if err != nil {
		t.Fatalf("parse failures must map to text, got error: %v", err)
	}
	if !strings.Contains(out, "malformed search output") {
		t.Fatalf("expected parse error text, got %q", out)
	}
}

// --- read_note ---

func TestReadTool_Found(t *testing.T) {
	r := &stubRunner{appleOut: "the body"}
	out, err := NewReadTool(r).Execute(context.Background(), map[string]any{"name": "X"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "Note: X\n\nthe body" {
		t.Fatalf("unexpected response: %q", out)
	}
	if r.lastDialect != "applescript" {
		t.Fatalf("read must use the declarative dialect, got %s", r.lastDialect)
	}
}

func TestReadTool_NotFoundSentinel(t *testing.T) {
	r := &stubRunner{appleOut: "Note not found"}
	out, err := NewReadTool(r).Execute(context.Background(), map[string]any{"name": "ghost"})
	if err != nil {
		t.Fatalf("not-found is a business outcome, not an error: %v", err)
	}
	if out != "Note not found" {
		t.Fatalf("expected sentinel, got %q", out)
	}
}

func TestReadTool_MissingName(t *testing.T) {
	_, err := NewReadTool(&stubRunner{}).Execute(context.Background(), map[string]any{})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestReadTool_ScriptError(t *testing.T) {
	r := &stubRunner{appleErr: execErr("execution error")}
	out, err := NewReadTool(r).Execute(context.Background(), map[string]any{"name": "X"})
	if err != nil {
		t.Fatalf("script failures must map to text, got error: %v", err)
	}
	if !strings.HasPrefix(out, "Error reading note:") {
		t.Fatalf("expected error text, got %q", out)
	}
}

// --- create_note ---

func TestCreateTool_Success(t *testing.T) {
	r := &stubRunner{appleOut: "T"}
	tool := NewCreateTool(r, Config{})
	out, err := tool.Execute(context.Background(), map[string]any{"name": "T", "body": "B"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "Successfully created note: T" {
		t.Fatalf("unexpected response: %q", out)
	}
	if !strings.Contains(r.lastScript, `folder "Notes"`) {
		t.Fatalf("expected default folder, got:\n%s", r.lastScript)
	}
	if !strings.Contains(r.lastScript, `account "iCloud"`) {
		t.Fatalf("expected default account, got:\n%s", r.lastScript)
	}
}

func TestCreateTool_ExplicitFolder(t *testing.T) {
	r := &stubRunner{appleOut: "T"}
	tool := NewCreateTool(r, Config{Account: "Work", DefaultFolder: "Inbox"})
	_, err := tool.Execute(context.Background(), map[string]any{"name": "T", "body": "B", "folder": "Projects"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(r.lastScript, `folder "Projects"`) {
		t.Fatalf("expected explicit folder, got:\n%s", r.lastScript)
	}
	if !strings.Contains(r.lastScript, `account "Work"`) {
		t.Fatalf("expected configured account, got:\n%s", r.lastScript)
	}
}

func TestCreateTool_MissingFolderSurfacesFailure(t *testing.T) {
	r := &stubRunner{appleErr: execErr(`Can't get folder "NonexistentFolder"`)}
	tool := NewCreateTool(r, Config{})
	out, err := tool.Execute(context.Background(), map[string]any{"name": "T", "body": "B", "folder": "NonexistentFolder"})
	if err != nil {
		t.Fatalf("script failures must map to text, got error: %v", err)
	}
	if !strings.HasPrefix(out, "Error creating note:") {
		t.Fatalf("expected error text, never silent success, got %q", out)
	}
	if !strings.Contains(out, "NonexistentFolder") {
		t.Fatalf("expected diagnostics embedded, got %q", out)
	}
}

func TestCreateTool_QuoteInNameKeepsScriptIntact(t *testing.T) {
	r := &stubRunner{appleOut: `A"B`}
	tool := NewCreateTool(r, Config{})
	_, err := tool.Execute(context.Background(), map[string]any{"name": `A"B`, "body": "C"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	assertBalancedQuotes(t, r.lastScript)
}

func TestCreateTool_MissingArgs(t *testing.T) {
	tool := NewCreateTool(&stubRunner{}, Config{})
	if _, err := tool.Execute(context.Background(), map[string]any{"body": "B"}); err == nil {
		t.Fatal("expected error for missing name")
	}
	if _, err := tool.Execute(context.Background(), map[string]any{"name": "T"}); err == nil {
		t.Fatal("expected error for missing body")
	}
}

// --- edit_note ---

func TestEditTool_Updated(t *testing.T) {
	r := &stubRunner{appleOut: "Note updated: X"}
	out, err := NewEditTool(r).Execute(context.Background(), map[string]any{"name": "X", "body": "Y"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "Note updated: X" {
		t.Fatalf("unexpected response: %q", out)
	}
}

func TestEditTool_NotFound(t *testing.T) {
	r := &stubRunner{appleOut: "Note not found"}
	out, err := NewEditTool(r).Execute(context.Background(), map[string]any{"name": "ghost", "body": "Y"})
	if err != nil {
		t.Fatalf("not-found is a business outcome, not an error: %v", err)
	}
	if out != "Note not found" {
		t.Fatalf("expected sentinel, got %q", out)
	}
}

func TestEditTool_ScriptError(t *testing.T) {
	r := &stubRunner{appleErr: execErr("boom")}
	out, err := NewEditTool(r).Execute(context.Background(), map[string]any{"name": "X", "body": "Y"})
	if err != nil {
		t.Fatalf("script failures must map to text, got error: %v", err)
	}
	if !strings.HasPrefix(out, "Error editing note:") {
		t.Fatalf("expected error text, got %q", out)
	}
}

package notes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Escaping contract: every request parameter substituted into a script
// must pass through the escaper for the target dialect, so pathological
// input (embedded quotes, backslashes, newlines) cannot change the
// script's structure.
//
//   - AppleScript: backslash-escape \ and " before substitution into a
//     double-quoted string literal.
//   - JXA: values are embedded as JSON string literals, which is a valid
//     JavaScript string encoding for any input.

// EscapeAppleScript escapes a value for a double-quoted AppleScript
// string literal.
func EscapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// JSString renders a value as a JavaScript string literal.
func JSString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// ListScript builds the JXA script that enumerates notes as a JSON array
// of {name, folder, created, modified}. When folder is non-empty, only
// notes in that folder are included.
func ListScript(folder string) string {
	return fmt.Sprintf(`
const want = %s;
const app = Application('Notes');
const results = [];
for (const note of app.notes()) {
    const folder = note.container().name();
    if (want !== '' && folder !== want) {
        continue;
    }
    results.push({
        name: note.name(),
        folder: folder,
        created: note.creationDate().toISOString(),
        modified: note.modificationDate().toISOString()
    });
}
JSON.stringify(results);
`, JSString(folder))
}

// SearchScript builds the JXA script that matches notes by
// case-insensitive substring on name or body, producing a JSON array of
// {name, folder, preview}.
func SearchScript(query string) string {
	return fmt.Sprintf(`
const needle = %s;
const app = Application('Notes');
const results = [];
for (const note of app.notes()) {
    const name = note.name();
    const body = note.body();
    if (name.toLowerCase().includes(needle) || body.toLowerCase().includes(needle)) {
        results.push({
            name: name,
            folder: note.container().name(),
            preview: body.substring(0, 200)
        });
    }
}
JSON.stringify(results);
`, JSString(strings.ToLower(query)))
}

// ReadScript builds the AppleScript that returns the body of the first
// note with the given name, or the not-found sentinel.
func ReadScript(name string) string {
	return fmt.Sprintf(`
tell application "Notes"
    set matchingNotes to (every note whose name is "%s")
    if (count of matchingNotes) > 0 then
        set theNote to item 1 of matchingNotes
        return body of theNote
    else
        return "Note not found"
    end if
end tell
`, EscapeAppleScript(name))
}

// CreateScript builds the AppleScript that creates a note in an existing
// folder of the given account and returns the created note's name. The
// folder is not created when absent; the interpreter fails instead.
func CreateScript(account, folder, name, body string) string {
	return fmt.Sprintf(`
tell application "Notes"
    tell account "%s"
        set targetFolder to folder "%s"
        set newNote to make new note at targetFolder with properties {name:"%s", body:"%s"}
        return name of newNote
    end tell
end tell
`, EscapeAppleScript(account), EscapeAppleScript(folder), EscapeAppleScript(name), EscapeAppleScript(body))
}

// EditScript builds the AppleScript that replaces the full body of the
// first note with the given name.
func EditScript(name, body string) string {
	return fmt.Sprintf(`
tell application "Notes"
    set matchingNotes to (every note whose name is "%s")
    if (count of matchingNotes) > 0 then
        set theNote to item 1 of matchingNotes
        set body of theNote to "%s"
        return "Note updated: " & name of theNote
    else
        return "Note not found"
    end if
end tell
`, EscapeAppleScript(name), EscapeAppleScript(body))
}

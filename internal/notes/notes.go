// Package notes implements the note-management tools backed by the
// macOS Notes application. Each tool renders an automation script,
// executes it through the osascript runner, and maps the raw output
// into a text response.
package notes

import "context"

// Runner abstracts script execution (implemented by osascript.Runner).
type Runner interface {
	RunAppleScript(ctx context.Context, script string) (string, error)
	RunJXA(ctx context.Context, script string) (string, error)
}

// Config holds the Notes app addressing parameters.
type Config struct {
	Account       string // account container used for note creation (default: iCloud)
	DefaultFolder string // folder for create_note when none is given (default: Notes)
}

func (c Config) withDefaults() Config {
	if c.Account == "" {
		c.Account = "iCloud"
	}
	if c.DefaultFolder == "" {
		c.DefaultFolder = "Notes"
	}
	return c
}

// notFoundSentinel is the business outcome for a missing note. It is
// ordinary text content, not an error.
const notFoundSentinel = "Note not found"

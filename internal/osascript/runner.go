// Package osascript executes automation scripts through the macOS
// osascript interpreter. It supports the declarative AppleScript dialect
// and the JSON-friendly JXA (JavaScript for Automation) dialect.
package osascript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	defaultBin            = "osascript"
	defaultTimeoutSeconds = 30
	defaultMaxOutputBytes = 65536
)

// Kind classifies a script execution failure.
type Kind string

const (
	// KindExec means the interpreter exited nonzero.
	KindExec Kind = "exec"
	// KindTimeout means the interpreter did not finish within the deadline.
	KindTimeout Kind = "timeout"
)

// ScriptError is returned when the interpreter fails. Stderr carries the
// captured diagnostic output.
type ScriptError struct {
	Kind     Kind
	ExitCode int
	Stderr   string
}

func (e *ScriptError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "script execution timed out"
	default:
		if e.Stderr != "" {
			return fmt.Sprintf("script execution failed (exit %d): %s", e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("script execution failed (exit %d)", e.ExitCode)
	}
}

// Config configures the script runner.
type Config struct {
	Bin            string // interpreter binary (default: osascript)
	TimeoutSeconds int
	MaxOutputBytes int
	Logger         *slog.Logger
}

// Runner invokes the automation interpreter as a synchronous child process.
// A mutex serializes invocations: the Notes app is not safe for concurrent
// automation access, so only one script runs at a time even when the
// surrounding transport is concurrent.
type Runner struct {
	bin            string
	timeout        time.Duration
	maxOutputBytes int
	logger         *slog.Logger
	mu             sync.Mutex
}

func NewRunner(cfg Config) *Runner {
	if cfg.Bin == "" {
		cfg.Bin = defaultBin
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = defaultMaxOutputBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{
		bin:            cfg.Bin,
		timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
		maxOutputBytes: cfg.MaxOutputBytes,
		logger:         cfg.Logger,
	}
}

// RunAppleScript executes a declarative AppleScript and returns trimmed stdout.
func (r *Runner) RunAppleScript(ctx context.Context, script string) (string, error) {
	return r.run(ctx, []string{"-e", script})
}

// RunJXA executes a JavaScript for Automation script and returns trimmed stdout.
func (r *Runner) RunJXA(ctx context.Context, script string) (string, error) {
	return r.run(ctx, []string{"-l", "JavaScript", "-e", script})
}

func (r *Runner) run(ctx context.Context, args []string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			r.logger.Warn("script timed out", "bin", r.bin, "timeout", r.timeout)
			return "", &ScriptError{Kind: KindTimeout, Stderr: strings.TrimSpace(stderr.String())}
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		r.logger.Warn("script failed", "bin", r.bin, "exit", exitCode, "duration", elapsed)
		return "", &ScriptError{
			Kind:     KindExec,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}

	r.logger.Debug("script completed", "bin", r.bin, "duration", elapsed)

	out := strings.TrimSpace(stdout.String())
	if r.maxOutputBytes > 0 && len(out) > r.maxOutputBytes {
		out = out[:r.maxOutputBytes] + "\n... (output truncated)"
	}
	return out, nil
}

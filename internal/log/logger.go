package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Verbosity levels
const (
	LevelQuiet = iota // Default: only errors and warnings
	LevelInfo         // -v: run progress, per-PR transitions
	LevelDebug        // -vv: API calls, pagination
	LevelTrace        // -vvv: full details
)

const slogLevelTrace = slog.Level(-8)

var (
	verbosity  int
	logger     *slog.Logger
	output     io.Writer
	inProgress bool
	workflow   bool // emit GitHub Actions workflow commands for warnings and errors
)

// Initialize sets up the global logger with the specified verbosity level.
func Initialize(level int, w io.Writer) {
	verbosity = level
	output = w

	var slogLevel slog.Level
	switch {
	case level >= LevelTrace:
		slogLevel = slogLevelTrace
	case level >= LevelDebug:
		slogLevel = slog.LevelDebug
	case level >= LevelInfo:
		slogLevel = slog.LevelInfo
	default:
		slogLevel = slog.LevelWarn
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel,
	}))
}

// EnableWorkflowCommands makes Warn and Error also print a
// "::warning::" / "::error::" line so GitHub Actions annotates the run.
func EnableWorkflowCommands(enabled bool) {
	workflow = enabled
}

// Info logs at info level (-v)
func Info(msg string, args ...any) {
	if verbosity >= LevelInfo {
		clearProgress()
		logger.Info(msg, args...)
	}
}

// Debug logs at debug level (-vv)
func Debug(msg string, args ...any) {
	if verbosity >= LevelDebug {
		clearProgress()
		logger.Debug(msg, args...)
	}
}

// Trace logs at trace level (-vvv)
func Trace(msg string, args ...any) {
	if verbosity >= LevelTrace {
		clearProgress()
		logger.Log(context.Background(), slogLevelTrace, msg, args...)
	}
}

// Warn logs at warn level (always visible)
func Warn(msg string, args ...any) {
	clearProgress()
	logger.Warn(msg, args...)
	annotate("warning", msg, args)
}

// Error logs at error level (always visible)
func Error(msg string, args ...any) {
	clearProgress()
	logger.Error(msg, args...)
	annotate("error", msg, args)
}

// Progress prints a progress message with carriage return (no newline).
// Only shown at info level or higher.
func Progress(format string, args ...any) {
	if verbosity >= LevelInfo {
		inProgress = true
		_, _ = fmt.Fprintf(output, "\r"+format, args...)
	}
}

// ProgressDone completes a progress line with "done" and newline
func ProgressDone() {
	if verbosity >= LevelInfo && inProgress {
		_, _ = fmt.Fprintln(output, " done")
		inProgress = false
	}
}

func clearProgress() {
	if inProgress {
		_, _ = fmt.Fprintln(output)
		inProgress = false
	}
}

// annotate writes a workflow command such as
// "::error::failed to list pull requests error=..." when enabled.
func annotate(kind, msg string, args []any) {
	if !workflow {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	_, _ = fmt.Fprintf(output, "::%s::%s\n", kind, escapeWorkflowData(b.String()))
}

// escapeWorkflowData escapes characters GitHub Actions treats specially in
// workflow command messages.
func escapeWorkflowData(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}

func init() {
	output = os.Stderr
	verbosity = LevelQuiet
	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

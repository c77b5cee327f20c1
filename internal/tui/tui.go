// Package tui renders the inline progress display shown while a countdown
// run talks to GitHub.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ciVars are environment variables whose presence means output is going to a
// CI log rather than a person.
var ciVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"JENKINS_URL",
	"TRAVIS",
	"CIRCLECI",
	"GITLAB_CI",
	"BUILDKITE",
}

// Run starts the progress display and blocks until the event channel is
// closed.
func Run(events <-chan Event, opts ...ModelOption) error {
	// Inline, no alt screen: the final table prints below the progress lines.
	p := tea.NewProgram(NewModel(events, opts...))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Canceled() {
		return ErrCanceled
	}
	return nil
}

// ShouldUseTUI reports whether stdout is an interactive terminal outside CI.
func ShouldUseTUI() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return !inCI(os.Getenv)
}

func inCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// SendEvent sends an event without blocking. Events are dropped when the
// channel is full; the next update supersedes them.
func SendEvent(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- e:
	default:
	}
}

// SendTaskEvent is a convenience function for sending task events.
func SendTaskEvent(ch chan<- Event, task TaskID, status TaskStatus, opts ...TaskEventOption) {
	e := TaskEvent{
		Task:   task,
		Status: status,
	}
	for _, opt := range opts {
		opt(&e)
	}
	SendEvent(ch, e)
}

// TaskEventOption is a functional option for TaskEvent.
type TaskEventOption func(*TaskEvent)

// WithMessage sets the message on a TaskEvent.
func WithMessage(msg string) TaskEventOption {
	return func(e *TaskEvent) {
		e.Message = msg
	}
}

// WithCount sets the count on a TaskEvent.
func WithCount(count int) TaskEventOption {
	return func(e *TaskEvent) {
		e.Count = count
	}
}

// WithProgress sets the progress on a TaskEvent.
func WithProgress(progress float64) TaskEventOption {
	return func(e *TaskEvent) {
		e.Progress = progress
	}
}

// WithError sets the error on a TaskEvent.
func WithError(err error) TaskEventOption {
	return func(e *TaskEvent) {
		e.Error = err
	}
}

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned by Run when the user quits the display before the
// run finishes.
var ErrCanceled = errors.New("canceled by user")

// Model is the Bubble Tea model for the progress display.
type Model struct {
	tasks       []Task
	spinner     spinner.Model
	progress    progress.Model
	events      <-chan Event
	repository  string
	dryRun      bool
	username    string
	done        bool
	canceled    bool
	windowWidth int
}

// doneMsg signals that the event channel was closed.
type doneMsg struct{}

// ModelOption is a functional option for configuring a Model.
type ModelOption func(*Model)

// WithRepository shows the target repository in the header.
func WithRepository(repo string) ModelOption {
	return func(m *Model) {
		m.repository = repo
	}
}

// WithDryRun marks the header as a dry run.
func WithDryRun(dryRun bool) ModelOption {
	return func(m *Model) {
		m.dryRun = dryRun
	}
}

// DefaultTasks returns the steps of a countdown run.
func DefaultTasks() []Task {
	return []Task{
		NewTask(TaskAuth, "Authenticating"),
		NewTask(TaskList, "Listing open pull requests"),
		NewTask(TaskApply, "Advancing countdown labels"),
	}
}

// NewModel creates a new progress model.
func NewModel(events <-chan Event, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(
		progress.WithScaledGradient("#60a5fa", "#1e3a8a"),
		progress.WithWidth(25),
		progress.WithoutPercentage(),
	)

	m := Model{
		tasks:    DefaultTasks(),
		spinner:  s,
		progress: p,
		events:   events,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Canceled reports whether the user quit before the run finished.
func (m Model) Canceled() bool {
	return m.canceled
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.events),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.canceled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case TaskEvent:
		var cmd tea.Cmd
		m, cmd = m.updateTask(msg)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) updateTask(e TaskEvent) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for i := range m.tasks {
		t := &m.tasks[i]
		if t.ID != e.Task {
			continue
		}
		t.Status = e.Status
		if e.Message != "" {
			t.Message = e.Message
		}
		if e.Count > 0 {
			t.Count = e.Count
		}
		if e.Progress > 0 {
			t.Progress = e.Progress
			cmd = m.progress.SetPercent(e.Progress)
		}
		if e.Error != nil {
			t.Error = e.Error
		}
		if e.Task == TaskAuth && e.Status == StatusComplete && e.Message != "" {
			m.username = e.Message
		}
		break
	}
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	if m.repository != "" {
		fmt.Fprintf(&b, "  Countdown for %s", userStyle.Render(m.repository))
		if m.dryRun {
			b.WriteString(" " + dryRunStyle.Render("(dry run)"))
		}
		b.WriteString("\n")
	}

	for _, task := range m.tasks {
		if task.ID == TaskAuth && task.Status == StatusComplete && m.username != "" {
			fmt.Fprintf(&b, "  %s Authenticated as %s\n", iconComplete, userStyle.Render(m.username))
			continue
		}
		b.WriteString(task.View(m.spinner.View(), m.progress) + "\n")
	}

	if !m.done && !m.canceled {
		b.WriteString(footerStyle.Render("\n  Press Ctrl+C to cancel"))
	}
	b.WriteString("\n")

	return b.String()
}

// waitForEvent creates a command that waits for the next event.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return event
	}
}

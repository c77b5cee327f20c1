package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// Task is one line of the progress display.
type Task struct {
	ID       TaskID
	Name     string
	Status   TaskStatus
	Message  string
	Count    int
	Progress float64
	Error    error
}

// NewTask creates a pending task.
func NewTask(id TaskID, name string) Task {
	return Task{
		ID:     id,
		Name:   name,
		Status: StatusPending,
	}
}

// View renders the task as a single line.
func (t Task) View(spinnerFrame string, prog progress.Model) string {
	var b strings.Builder

	name := taskNameStyle.Render(t.Name)
	if t.Status == StatusPending {
		name = taskDimStyle.Render(t.Name)
	}
	fmt.Fprintf(&b, "  %s %s", StatusIcon(t.Status, spinnerFrame), name)

	switch {
	case t.Status == StatusRunning && t.Progress > 0:
		fmt.Fprintf(&b, " %s %d%%", prog.ViewAs(t.Progress), int(t.Progress*100))
		if t.Message != "" {
			b.WriteString(" " + messageStyle.Render("("+t.Message+")"))
		}
	case t.Message != "":
		b.WriteString(" " + messageStyle.Render(t.Message))
	case t.Count > 0:
		b.WriteString(" " + messageStyle.Render(fmt.Sprintf("(%d)", t.Count)))
	}

	if t.Error != nil {
		b.WriteString(" " + errorStyle.Render(t.Error.Error()))
	}

	return b.String()
}

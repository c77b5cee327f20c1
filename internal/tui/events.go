package tui

// TaskID identifies a step of a countdown run in the progress display.
type TaskID int

const (
	TaskAuth  TaskID = iota // Authenticating with GitHub
	TaskList                // Listing open pull requests
	TaskApply               // Resolving and applying countdown labels
)

// TaskStatus represents the current status of a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusRunning
	StatusComplete
	StatusError
	StatusSkipped
)

// Event is the interface for all TUI events.
type Event interface {
	isEvent()
}

// TaskEvent represents an update to a task's status.
type TaskEvent struct {
	Task     TaskID
	Status   TaskStatus
	Message  string  // e.g. "12/30" while applying
	Count    int     // pull requests listed or advanced
	Progress float64 // 0.0 to 1.0
	Error    error   // set when Status is StatusError
}

func (TaskEvent) isEvent() {}

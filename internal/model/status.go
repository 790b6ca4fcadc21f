package model

// TaskStatus represents the status of a single queued conversion
type TaskStatus string

const (
	// TaskStatusPending means the item is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means the HTTP fetch is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusConverting means the payload is being decoded and normalized
	TaskStatusConverting TaskStatus = "Converting"

	// TaskStatusSaving means the PNG is being written to disk
	TaskStatusSaving TaskStatus = "Saving"

	// TaskStatusCompleted means the item was converted and saved
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the item failed
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the item is being processed
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDownloading || ts == TaskStatusConverting || ts == TaskStatusSaving
}

// IsFinished returns true if the item reached a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}

// Phase is a step of the fetch-decode-encode unit reported while an item runs.
type Phase int

const (
	PhaseDownloading Phase = iota
	PhaseConverting
	PhaseSaving
)

// Status maps a phase to the queue status shown for the item.
func (p Phase) Status() TaskStatus {
	switch p {
	case PhaseDownloading:
		return TaskStatusDownloading
	case PhaseConverting:
		return TaskStatusConverting
	case PhaseSaving:
		return TaskStatusSaving
	default:
		return TaskStatusPending
	}
}

// BatchState is the lifecycle state of one orchestrator run.
type BatchState string

const (
	BatchStateIdle              BatchState = "idle"
	BatchStateEnsuringDirectory BatchState = "ensuring_directory"
	BatchStateDirectoryFailed   BatchState = "directory_failed"
	BatchStateIterating         BatchState = "iterating"
	BatchStateCompleted         BatchState = "completed"
)

// IsTerminal reports whether no further transitions can happen in this run.
func (s BatchState) IsTerminal() bool {
	return s == BatchStateDirectoryFailed || s == BatchStateCompleted
}

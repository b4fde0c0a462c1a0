package driver

// Status is the lifecycle state of one file in a formatting run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "formatting"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event reports per-file progress to an observer such as the terminal
// UI. Events for one file arrive in order; events for different files
// may interleave.
type Event struct {
	Path    string
	Status  Status
	Changed bool
	Err     error
}

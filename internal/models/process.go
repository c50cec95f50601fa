package models

import "time"

// ProcessStatus is a ManagedProcess's lifecycle state. Once terminal
// (Stopped or Failed) it never changes again.
type ProcessStatus string

const (
	StatusRunning ProcessStatus = "running"
	StatusStopped ProcessStatus = "stopped"
	StatusFailed  ProcessStatus = "failed"
)

// ManagedProcess is a child OS process the supervisor spawned and is
// tracking. ProcessID is stable for the process's lifetime and is the
// supervisor's own handle, distinct from the OS PID.
type ManagedProcess struct {
	ProcessID   string        `json:"process_id"`
	ProjectName string        `json:"project_name"`
	PID         int           `json:"pid"`
	Command     string        `json:"command"`
	StartedAt   time.Time     `json:"started_at"`
	Port        *int          `json:"port,omitempty"`
	Status      ProcessStatus `json:"status"`
}

// ProcessEvent is the sum type the supervisor emits on its single event
// stream, consumed in FIFO order per ProcessID by the event router.
type ProcessEvent struct {
	Kind        ProcessEventKind `json:"kind"`
	ProcessID   string           `json:"process_id"`
	Line        string           `json:"line,omitempty"`
	IsStderr    bool             `json:"is_stderr,omitempty"`
	Port        int              `json:"port,omitempty"`
	ExitCode    *int             `json:"exit_code,omitempty"`
}

type ProcessEventKind string

const (
	EventOutput       ProcessEventKind = "output"
	EventPortDetected ProcessEventKind = "port_detected"
	EventExited       ProcessEventKind = "exited"
)

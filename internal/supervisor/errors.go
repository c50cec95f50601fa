package supervisor

import "errors"

var (
	// ErrProcessNotFound is returned by Stop when process_id is unknown.
	ErrProcessNotFound = errors.New("process not found")
	// ErrProcessNotRunning is returned by Stop when the process has already
	// reached a terminal state.
	ErrProcessNotRunning = errors.New("process is not running")
)

package supervisor

import (
	"os/exec"

	"github.com/pkyanam/proj/internal/models"
)

// record pairs a ManagedProcess's public snapshot with the live OS
// process handle. The handle is kept here, not inside the wait task's
// closure, so Stop can signal the process directly instead of trusting a
// PID that may have been reused by the kernel after exit.
type record struct {
	proc models.ManagedProcess
	cmd  *exec.Cmd
}

func (r *record) snapshot() models.ManagedProcess {
	return r.proc
}

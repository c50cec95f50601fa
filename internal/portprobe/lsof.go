package portprobe

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// lsofProber shells out to lsof to find a PID's listening port. Used on
// platforms without a /proc filesystem.
type lsofProber struct {
	cfg Config
}

func (p *lsofProber) Probe(ctx context.Context, pid int) (int, bool) {
	return poll(ctx, p.cfg, func() (int, bool) {
		return scanLsofForPID(ctx, pid)
	})
}

func scanLsofForPID(ctx context.Context, pid int) (int, bool) {
	cmd := exec.CommandContext(ctx, "lsof", "-iP", "-n", "-a", "-p", strconv.Itoa(pid))
	output, err := cmd.Output()
	if err != nil {
		return 0, false
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.Contains(line, "LISTEN") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		addr := fields[len(fields)-2]
		idx := strings.LastIndex(addr, ":")
		if idx < 0 {
			continue
		}
		port, err := strconv.Atoi(addr[idx+1:])
		if err != nil || !validPort(port) {
			continue
		}
		return port, true
	}
	return 0, false
}

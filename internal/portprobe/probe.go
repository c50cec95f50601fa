// Package portprobe discovers the TCP port a child process is listening
// on, given only its PID. Probing is purely observational: the traced
// process is never modified.
package portprobe

import (
	"context"
	"runtime"
	"time"
)

// Prober finds the first LISTEN port held by pid, or reports none found
// once its internal deadline elapses.
type Prober interface {
	Probe(ctx context.Context, pid int) (port int, found bool)
}

// Config bounds how long a single probe may run.
type Config struct {
	InitialDelay time.Duration
	PollInterval time.Duration
	Deadline     time.Duration
}

// DefaultConfig matches the budget in the component contract: an initial
// 500ms settle delay, then polling every 500ms for up to 30s total.
func DefaultConfig() Config {
	return Config{
		InitialDelay: 500 * time.Millisecond,
		PollInterval: 500 * time.Millisecond,
		Deadline:     30 * time.Second,
	}
}

// New selects the best available probing strategy for the current OS:
// /proc-based on Linux, lsof elsewhere.
func New(cfg Config) Prober {
	if runtime.GOOS == "linux" {
		return &procProber{cfg: cfg}
	}
	return &lsofProber{cfg: cfg}
}

// poll runs scan repeatedly on cfg's schedule until it reports a port,
// the deadline elapses, or ctx is cancelled.
func poll(ctx context.Context, cfg Config, scan func() (int, bool)) (int, bool) {
	deadline := time.Now().Add(cfg.Deadline)

	timer := time.NewTimer(cfg.InitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, false
		case <-timer.C:
		}

		if port, ok := scan(); ok {
			return port, true
		}

		if time.Now().After(deadline) {
			return 0, false
		}
		timer.Reset(cfg.PollInterval)
	}
}

func validPort(port int) bool {
	return port > 0 && port <= 65535
}

// Package events contains the Event Router: the single consumer of the
// supervisor's event stream that turns port-detected and exit lifecycle
// events into routing-table and registry mutations.
package events

import (
	"github.com/pkyanam/proj/internal/logger"
	"github.com/pkyanam/proj/internal/models"
)

// processSource is the slice of Supervisor the router depends on.
type processSource interface {
	Get(processID string) (models.ManagedProcess, bool)
	UpdateStatus(processID string, status models.ProcessStatus)
	UpdatePort(processID string, port int)
	Events() <-chan models.ProcessEvent
}

// routingTable is the slice of routing.Table the router depends on.
type routingTable interface {
	Install(name string, port int)
	Remove(name string)
}

// projectRegistry is the slice of registry.Registry the router depends on.
type projectRegistry interface {
	UpdatePort(name string, port *int) error
}

// Router is the sole writer of the routing table and the sole caller of
// the supervisor's status/port mutators.
type Router struct {
	supervisor processSource
	routing    routingTable
	registry   projectRegistry
	stopCh     chan struct{}
}

// New builds a Router wired to the given supervisor, routing table, and
// registry. Call Run to start consuming events.
func New(supervisor processSource, routing routingTable, registry projectRegistry) *Router {
	return &Router{
		supervisor: supervisor,
		routing:    routing,
		registry:   registry,
		stopCh:     make(chan struct{}),
	}
}

// Run consumes the supervisor's event stream until Stop is called or the
// stream closes. Intended to run for the daemon's lifetime in its own
// goroutine.
func (r *Router) Run() {
	for {
		select {
		case ev, ok := <-r.supervisor.Events():
			if !ok {
				return
			}
			r.handle(ev)
		case <-r.stopCh:
			return
		}
	}
}

// Stop ends Run's loop. Safe to call once.
func (r *Router) Stop() {
	close(r.stopCh)
}

func (r *Router) handle(ev models.ProcessEvent) {
	switch ev.Kind {
	case models.EventOutput:
		r.handleOutput(ev)
	case models.EventPortDetected:
		r.handlePortDetected(ev)
	case models.EventExited:
		r.handleExited(ev)
	}
}

func (r *Router) handleOutput(ev models.ProcessEvent) {
	logger.Logger.Debug().
		Str("process_id", ev.ProcessID).
		Bool("stderr", ev.IsStderr).
		Msg(ev.Line)
}

func (r *Router) handlePortDetected(ev models.ProcessEvent) {
	proc, ok := r.supervisor.Get(ev.ProcessID)
	if !ok {
		return
	}

	r.supervisor.UpdatePort(ev.ProcessID, ev.Port)
	r.routing.Install(proc.ProjectName, ev.Port)

	port := ev.Port
	if err := r.registry.UpdatePort(proc.ProjectName, &port); err != nil {
		logger.Warnf("event router: failed to persist port for %s: %v", proc.ProjectName, err)
	}
	logger.Infof("routed %s -> 127.0.0.1:%d", proc.ProjectName, ev.Port)
}

func (r *Router) handleExited(ev models.ProcessEvent) {
	proc, ok := r.supervisor.Get(ev.ProcessID)
	if !ok {
		return
	}

	status := models.StatusFailed
	if ev.ExitCode != nil && *ev.ExitCode == 0 {
		status = models.StatusStopped
	}
	r.supervisor.UpdateStatus(ev.ProcessID, status)
	r.routing.Remove(proc.ProjectName)
}

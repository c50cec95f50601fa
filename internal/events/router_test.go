package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkyanam/proj/internal/models"
)

type fakeSupervisor struct {
	procs       map[string]models.ManagedProcess
	events      chan models.ProcessEvent
	statusCalls []models.ProcessStatus
	portCalls   []int
}

func newFakeSupervisor() *fakeSupervisor {
	return &fakeSupervisor{
		procs:  make(map[string]models.ManagedProcess),
		events: make(chan models.ProcessEvent, 8),
	}
}

func (f *fakeSupervisor) Get(processID string) (models.ManagedProcess, bool) {
	p, ok := f.procs[processID]
	return p, ok
}
func (f *fakeSupervisor) UpdateStatus(processID string, status models.ProcessStatus) {
	f.statusCalls = append(f.statusCalls, status)
}
func (f *fakeSupervisor) UpdatePort(processID string, port int) {
	f.portCalls = append(f.portCalls, port)
}
func (f *fakeSupervisor) Events() <-chan models.ProcessEvent { return f.events }

type fakeRouting struct {
	installed map[string]int
	removed   []string
}

func newFakeRouting() *fakeRouting {
	return &fakeRouting{installed: make(map[string]int)}
}
func (f *fakeRouting) Install(name string, port int) { f.installed[name] = port }
func (f *fakeRouting) Remove(name string)            { f.removed = append(f.removed, name) }

type fakeRegistry struct {
	updated map[string]*int
	err     error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{updated: make(map[string]*int)}
}
func (f *fakeRegistry) UpdatePort(name string, port *int) error {
	f.updated[name] = port
	return f.err
}

func TestPortDetectedInstallsRouteAndPersists(t *testing.T) {
	sup := newFakeSupervisor()
	sup.procs["p1"] = models.ManagedProcess{ProcessID: "p1", ProjectName: "alpha"}
	routingTbl := newFakeRouting()
	reg := newFakeRegistry()

	router := New(sup, routingTbl, reg)
	go router.Run()
	defer router.Stop()

	sup.events <- models.ProcessEvent{Kind: models.EventPortDetected, ProcessID: "p1", Port: 4242}

	require.Eventually(t, func() bool {
		return routingTbl.installed["alpha"] == 4242
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return reg.updated["alpha"] != nil && *reg.updated["alpha"] == 4242
	}, time.Second, 5*time.Millisecond)
}

func TestExitedRemovesRouteAndMarksStatus(t *testing.T) {
	sup := newFakeSupervisor()
	sup.procs["p1"] = models.ManagedProcess{ProcessID: "p1", ProjectName: "alpha"}
	routingTbl := newFakeRouting()
	reg := newFakeRegistry()

	router := New(sup, routingTbl, reg)
	go router.Run()
	defer router.Stop()

	zero := 0
	sup.events <- models.ProcessEvent{Kind: models.EventExited, ProcessID: "p1", ExitCode: &zero}

	require.Eventually(t, func() bool {
		return len(routingTbl.removed) == 1 && routingTbl.removed[0] == "alpha"
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(sup.statusCalls) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.StatusStopped, sup.statusCalls[0])
}

func TestExitedWithNonzeroCodeMarksFailed(t *testing.T) {
	sup := newFakeSupervisor()
	sup.procs["p1"] = models.ManagedProcess{ProcessID: "p1", ProjectName: "alpha"}
	routingTbl := newFakeRouting()
	reg := newFakeRegistry()

	router := New(sup, routingTbl, reg)
	go router.Run()
	defer router.Stop()

	code := 1
	sup.events <- models.ProcessEvent{Kind: models.EventExited, ProcessID: "p1", ExitCode: &code}

	require.Eventually(t, func() bool {
		return len(sup.statusCalls) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.StatusFailed, sup.statusCalls[0])
}

func TestUnknownProcessIDIsIgnored(t *testing.T) {
	sup := newFakeSupervisor()
	routingTbl := newFakeRouting()
	reg := newFakeRegistry()

	router := New(sup, routingTbl, reg)
	go router.Run()
	defer router.Stop()

	sup.events <- models.ProcessEvent{Kind: models.EventPortDetected, ProcessID: "ghost", Port: 1}

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, routingTbl.installed)
}

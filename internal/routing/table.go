// Package routing implements the daemon's project -> backend port map: a
// read-mostly structure shared between the event router (sole writer) and
// the reverse proxy (many concurrent readers).
package routing

import "sync"

// Table is a concurrency-safe project name -> port map. Construct with
// New; the zero value has a nil map and Install on it panics.
type Table struct {
	mu    sync.RWMutex
	ports map[string]int
}

// New returns an empty, ready-to-use Table.
func New() *Table {
	return &Table{ports: make(map[string]int)}
}

// Lookup returns the port routed for name, if any. Safe for concurrent
// callers; never blocks on a concurrent writer for longer than a single
// map read.
func (t *Table) Lookup(name string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	port, ok := t.ports[name]
	return port, ok
}

// Install atomically routes name to port, overwriting any prior entry.
func (t *Table) Install(name string, port int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ports[name] = port
}

// Remove atomically removes name's route, if any.
func (t *Table) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ports, name)
}

// Route pairs a project name with its routed port, for Snapshot.
type Route struct {
	Name string
	Port int
}

// Snapshot returns a point-in-time copy of every routed entry, for
// diagnostics only.
func (t *Table) Snapshot() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Route, 0, len(t.ports))
	for name, port := range t.ports {
		out = append(out, Route{Name: name, Port: port})
	}
	return out
}

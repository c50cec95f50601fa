package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pkyanam/proj/internal/logger"
	"github.com/pkyanam/proj/internal/models"
	"github.com/pkyanam/proj/internal/recovery"
)

// Watcher reconciles the in-memory registry with out-of-band edits to
// project.json files, e.g. a user hand-editing metadata while the
// daemon is running. It never overwrites the port the event router set,
// only fields that could plausibly change externally.
type Watcher struct {
	reg     *Registry
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// Watch starts watching the registry's projects directory for changes.
// fsnotify watches are non-recursive, so the top-level projects
// directory is watched only to learn about newly created project
// subdirectories; each project's own subdirectory is watched
// individually for edits to its project.json. Close stops it. Safe to
// call at most once per Registry.
func (r *Registry) Watch() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(r.projectsDir()); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{reg: r, watcher: fw, stopCh: make(chan struct{})}

	entries, err := os.ReadDir(r.projectsDir())
	if err != nil {
		fw.Close()
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := fw.Add(filepath.Join(r.projectsDir(), entry.Name())); err != nil {
			logger.Warnf("registry: failed to watch %s: %v", entry.Name(), err)
		}
	}

	recovery.SafeGo("registry.watch", w.run)
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("registry: watcher error: %v", err)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// A newly created project directory needs its own watch added
	// before we can see writes to its project.json.
	if event.Op&fsnotify.Create != 0 {
		if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				logger.Warnf("registry: failed to watch %s: %v", event.Name, err)
			}
			return
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if filepath.Base(event.Name) != "project.json" {
		return
	}
	w.reconcile(event.Name)
}

func (w *Watcher) reconcile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("registry: failed to reread %s: %v", path, err)
		return
	}
	var p models.Project
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warnf("registry: malformed %s: %v", path, err)
		return
	}

	w.reg.mu.Lock()
	defer w.reg.mu.Unlock()
	if existing, ok := w.reg.projects[p.Name]; ok {
		existing.RootDir = p.RootDir
	} else {
		w.reg.projects[p.Name] = &p
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stopCh)
	return w.watcher.Close()
}

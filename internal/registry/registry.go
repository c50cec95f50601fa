// Package registry is an in-memory index over on-disk project records
// under <data_dir>/projects/<name>/project.json. It is the daemon's sole
// owner of that on-disk state.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkyanam/proj/internal/logger"
	"github.com/pkyanam/proj/internal/models"
)

// Registry is the boundary component the core consults to resolve a
// project's working directory and to persist discovered ports.
type Registry struct {
	mu       sync.RWMutex
	dataDir  string
	projects map[string]*models.Project
}

// Open loads every existing project.json under dataDir/projects and
// returns a ready Registry. dataDir is created if missing.
func Open(dataDir string) (*Registry, error) {
	r := &Registry{
		dataDir:  dataDir,
		projects: make(map[string]*models.Project),
	}
	if err := os.MkdirAll(r.projectsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating projects directory: %w", err)
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) projectsDir() string {
	return filepath.Join(r.dataDir, "projects")
}

func (r *Registry) projectFile(name string) string {
	return filepath.Join(r.projectsDir(), name, "project.json")
}

func (r *Registry) load() error {
	entries, err := os.ReadDir(r.projectsDir())
	if err != nil {
		return fmt.Errorf("reading projects directory: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.projectsDir(), entry.Name(), "project.json"))
		if err != nil {
			logger.Warnf("registry: skipping %s: %v", entry.Name(), err)
			continue
		}
		var p models.Project
		if err := json.Unmarshal(data, &p); err != nil {
			logger.Warnf("registry: malformed project.json for %s: %v", entry.Name(), err)
			continue
		}
		r.projects[p.Name] = &p
	}
	return nil
}

// Create registers a new project and writes its metadata to disk
// exactly once. rootDir must already be an absolute, existing directory;
// the caller is responsible for validating it.
func (r *Registry) Create(name, rootDir string) (models.Project, error) {
	if !models.ValidateName(name) {
		return models.Project{}, ErrInvalidName
	}

	r.mu.Lock()
	if _, exists := r.projects[name]; exists {
		r.mu.Unlock()
		return models.Project{}, ErrProjectExists
	}

	p := &models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		RootDir:   rootDir,
		CreatedAt: time.Now(),
	}
	r.projects[name] = p
	r.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(r.projectsDir(), name, "chrome"), 0o755); err != nil {
		return models.Project{}, fmt.Errorf("creating project directory: %w", err)
	}
	if err := r.persist(p); err != nil {
		return models.Project{}, fmt.Errorf("writing project metadata: %w", err)
	}

	return *p, nil
}

func (r *Registry) persist(p *models.Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.projectFile(p.Name), data, 0o644)
}

// Get resolves a single project by name.
func (r *Registry) Get(name string) (models.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[name]
	if !ok {
		return models.Project{}, false
	}
	return *p, true
}

// List returns every known project.
func (r *Registry) List() []models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out
}

// Count returns the number of known projects.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

// UpdatePort persists a project's most recently discovered port. Disk
// errors are logged and also returned; the event router only logs a
// returned error, so it never interrupts the router's control path.
func (r *Registry) UpdatePort(name string, port *int) error {
	r.mu.Lock()
	p, ok := r.projects[name]
	if !ok {
		r.mu.Unlock()
		return ErrProjectNotFound
	}
	p.Port = port
	snapshot := *p
	r.mu.Unlock()

	if err := r.persist(&snapshot); err != nil {
		logger.Errorf("registry: failed to persist port for %s: %v", name, err)
		return err
	}
	return nil
}

package models

import (
	"regexp"
	"time"
)

// nameRE is the accepted shape for a project name: starts with an
// alphanumeric, then up to 63 more alphanumerics/hyphens/underscores.
var nameRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidateName reports whether name is an acceptable project name.
func ValidateName(name string) bool {
	return nameRE.MatchString(name)
}

// Project is a named unit of work with a root directory and its own
// virtual hostname. The registry owns its on-disk representation; the
// core only ever reads it or updates Port.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RootDir   string    `json:"root_dir"`
	CreatedAt time.Time `json:"created_at"`
	Port      *int      `json:"port,omitempty"`
}

// Host returns the virtual hostname a browser would use to reach this
// project, e.g. "my-app.localhost".
func (p *Project) Host() string {
	return p.Name + ".localhost"
}

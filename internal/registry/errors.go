package registry

import "errors"

var (
	// ErrInvalidName is returned by Create when the project name fails validation.
	ErrInvalidName = errors.New("invalid project name")
	// ErrProjectExists is returned by Create when the name is already taken.
	ErrProjectExists = errors.New("project already exists")
	// ErrProjectNotFound is returned by UpdatePort for an unknown project.
	ErrProjectNotFound = errors.New("project not found")
)

package registry

import "errors"

// Registry errors.
var (
	// ErrDuplicate indicates a name or alias is already taken.
	ErrDuplicate = errors.New("registry: duplicate command")

	// ErrNotFound indicates no command has the given name or alias.
	ErrNotFound = errors.New("registry: command not found")

	// ErrNilCommand indicates a nil command was registered.
	ErrNilCommand = errors.New("registry: command cannot be nil")
)

package command

import (
	"errors"
	"strings"
)

// Command definition errors.
var (
	// ErrEmptyName indicates a command without a name.
	ErrEmptyName = errors.New("command: name cannot be empty")

	// ErrNoExecute indicates a command without an Execute function.
	ErrNoExecute = errors.New("command: no execute function")

	// ErrUnknownArgType indicates an unrecognized argument type name.
	ErrUnknownArgType = errors.New("command: unknown argument type")
)

// ValidationError aggregates every schema violation found while validating
// a command's arguments.
type ValidationError struct {
	// Command is the command being validated.
	Command string

	// Problems lists each violation in schema order.
	Problems []string
}

// Error joins all problems into a single message.
func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidCommand is returned when mind.command receives a bad table.
	ErrInvalidCommand = errors.New("lua: invalid command definition")
)

package cmdline

import (
	"errors"
	"fmt"
)

// Parse errors. Their text is shown to users verbatim.
var (
	// ErrEmpty indicates the input contained no command.
	ErrEmpty = errors.New("Empty command")

	// ErrUnclosedQuote indicates a quote was opened and never closed.
	ErrUnclosedQuote = errors.New("Unclosed quote")
)

// ParseError describes a malformed command line.
type ParseError struct {
	// Input is the command line being parsed.
	Input string

	// Pos is the byte offset of the problem, or -1 if not applicable.
	Pos int

	// Err is the underlying sentinel error.
	Err error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrUnclosedQuote) && e.Pos >= 0 && e.Pos < len(e.Input) {
		return fmt.Sprintf("%v: %c opened at position %d", e.Err, e.Input[e.Pos], e.Pos)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for a config file that is neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalid wraps every Validate failure.
	ErrInvalid = errors.New("invalid configuration")
)

// ParseError reports a config file the decoder rejected. Line and Column
// are 1-based and zero when the decoder gave no position.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Path
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	}
	return fmt.Sprintf("config %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

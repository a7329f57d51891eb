package keyseq

import (
	"errors"
	"fmt"
	"sort"
)

// Table errors.
var (
	// ErrEmptyPattern indicates a binding with no keys.
	ErrEmptyPattern = errors.New("keyseq: empty pattern")

	// ErrReservedPattern indicates a pattern that can never be matched
	// because it starts with a count digit or is the dot-repeat key.
	ErrReservedPattern = errors.New("keyseq: reserved pattern")
)

// DotRepeat is the key that re-invokes the last repeatable command.
const DotRepeat = "."

// NumberListKey is the key that, preceded by a count, yields "m:<count>".
const NumberListKey = "m"

// DefaultBindings maps the standard key sequences to command lines.
var DefaultBindings = map[string]string{
	"j":   "down",
	"k":   "up",
	"h":   "parent",
	"l":   "child",
	"gg":  "first",
	"G":   "last",
	"zz":  "center",
	"o":   `add "New node"`,
	"O":   `add "New node" --child`,
	"x":   "delete",
	"dd":  "delete-line",
	"yy":  "yank-line",
	"yap": "yank-subtree",
	"p":   "paste",
	">>":  "indent",
	"<<":  "outdent",
	"m":   "number-list",
}

// Table is an immutable set of key patterns and the command each maps to.
type Table struct {
	bindings map[string]string
	prefixes map[string]bool
}

// NewTable builds a table from pattern -> command bindings.
func NewTable(bindings map[string]string) (*Table, error) {
	t := &Table{
		bindings: make(map[string]string, len(bindings)),
		prefixes: make(map[string]bool),
	}

	for pattern, cmd := range bindings {
		if pattern == "" {
			return nil, ErrEmptyPattern
		}
		if pattern == DotRepeat || IsCountStart(pattern[0]) {
			return nil, fmt.Errorf("%w: %q", ErrReservedPattern, pattern)
		}
		t.bindings[pattern] = cmd
		for i := 1; i < len(pattern); i++ {
			t.prefixes[pattern[:i]] = true
		}
	}

	return t, nil
}

// MustTable builds a table and panics on error.
// Use only for known-valid bindings in initialization code.
func MustTable(bindings map[string]string) *Table {
	t, err := NewTable(bindings)
	if err != nil {
		panic("invalid key table: " + err.Error())
	}
	return t
}

// DefaultTable returns a table built from DefaultBindings.
func DefaultTable() *Table {
	return MustTable(DefaultBindings)
}

// Has reports whether pattern is bound.
func (t *Table) Has(pattern string) bool {
	_, ok := t.bindings[pattern]
	return ok
}

// IsPrefix reports whether keys is a strict prefix of a bound pattern.
func (t *Table) IsPrefix(keys string) bool {
	return t.prefixes[keys]
}

// Command returns the command bound to pattern.
func (t *Table) Command(pattern string) (string, bool) {
	cmd, ok := t.bindings[pattern]
	return cmd, ok
}

// Patterns returns all bound patterns, sorted.
func (t *Table) Patterns() []string {
	out := make([]string, 0, len(t.bindings))
	for p := range t.bindings {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Bindings returns a copy of the pattern -> command map.
func (t *Table) Bindings() map[string]string {
	out := make(map[string]string, len(t.bindings))
	for k, v := range t.bindings {
		out[k] = v
	}
	return out
}

// Len returns the number of bound patterns.
func (t *Table) Len() int {
	return len(t.bindings)
}

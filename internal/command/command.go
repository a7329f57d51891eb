package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ArgType defines the declared type of a command argument.
type ArgType uint8

const (
	// ArgString accepts any token as-is.
	ArgString ArgType = iota

	// ArgNumber accepts numeric tokens.
	ArgNumber

	// ArgBoolean accepts "true"/"false" (case-insensitive) or boolean values.
	ArgBoolean

	// ArgNodeID accepts any non-blank string identifying a node.
	ArgNodeID
)

// String returns a string representation of the argument type.
func (t ArgType) String() string {
	switch t {
	case ArgString:
		return "string"
	case ArgNumber:
		return "number"
	case ArgBoolean:
		return "boolean"
	case ArgNodeID:
		return "node-id"
	default:
		return "unknown"
	}
}

// ParseArgType converts a type name ("string", "number", "boolean", "node-id")
// into an ArgType.
func ParseArgType(name string) (ArgType, error) {
	switch name {
	case "string", "":
		return ArgString, nil
	case "number":
		return ArgNumber, nil
	case "boolean", "bool":
		return ArgBoolean, nil
	case "node-id", "nodeid":
		return ArgNodeID, nil
	default:
		return ArgString, fmt.Errorf("%w: %q", ErrUnknownArgType, name)
	}
}

// ArgSpec declares one argument accepted by a command.
type ArgSpec struct {
	// Name is the argument identifier used with --name.
	Name string

	// Type is the declared type.
	Type ArgType

	// Required indicates the argument must be supplied unless Default is set.
	Required bool

	// Default is used when the argument is absent. Nil means no default.
	Default any

	// Description explains the argument.
	Description string
}

// HasDefault reports whether the argument declares a default value.
func (a *ArgSpec) HasDefault() bool {
	return a.Default != nil
}

// Source identifies how an invocation was produced.
type Source uint8

const (
	// SourceText is a typed command line.
	SourceText Source = iota
	// SourceKeys is a recognized key sequence.
	SourceKeys
	// SourceRepeat is a dot-repeat of an earlier invocation.
	SourceRepeat
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceText:
		return "text"
	case SourceKeys:
		return "keys"
	case SourceRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Invocation carries everything a command sees when it runs.
type Invocation struct {
	// ID uniquely identifies this invocation.
	ID uuid.UUID

	// Name is the primary name of the invoked command.
	Name string

	// Env is the opaque host environment (document, selection, clipboard...).
	Env any

	// Args holds the validated arguments.
	Args Args

	// Count is the numeric prefix. It is zero when no count was supplied
	// or when the command is not countable.
	Count int

	// Source is where the invocation came from.
	Source Source

	// Raw is the original input: the command line or the key sequence.
	Raw string
}

// CountOr returns the count, or def when no count was supplied.
func (inv *Invocation) CountOr(def int) int {
	if inv.Count <= 0 {
		return def
	}
	return inv.Count
}

// ExecuteFunc runs a command.
// A returned error is reported as a failed Result carrying the error message.
type ExecuteFunc func(ctx context.Context, inv *Invocation) (Result, error)

// GuardFunc reports whether a command's preconditions hold.
type GuardFunc func(ctx context.Context, inv *Invocation) bool

// Command is a named, invokable operation.
type Command struct {
	// Name is the unique primary name.
	Name string

	// Aliases are secondary lookup keys.
	Aliases []string

	// Description explains what the command does.
	Description string

	// Category groups related commands (e.g., "Navigation", "Edit").
	Category string

	// Examples shows example command lines.
	Examples []string

	// Args is the ordered argument schema.
	Args []ArgSpec

	// Guard is an optional precondition. When it returns false the
	// command is not executed.
	Guard GuardFunc

	// Execute performs the command.
	Execute ExecuteFunc

	// Repeatable allows dot-repeat to re-invoke the command.
	Repeatable bool

	// Countable indicates a numeric prefix is meaningful to the command.
	Countable bool

	// Source records where the command was registered from
	// (e.g., "builtin", "lua:plugins/outline.lua").
	Source string
}

// Names returns the primary name followed by the aliases.
func (c *Command) Names() []string {
	names := make([]string, 0, 1+len(c.Aliases))
	names = append(names, c.Name)
	names = append(names, c.Aliases...)
	return names
}

// Arg returns the schema entry for name, or nil.
func (c *Command) Arg(name string) *ArgSpec {
	for i := range c.Args {
		if c.Args[i].Name == name {
			return &c.Args[i]
		}
	}
	return nil
}

// Usage returns a one-line usage string derived from the schema.
func (c *Command) Usage() string {
	usage := c.Name
	for _, a := range c.Args {
		part := "--" + a.Name
		if a.Type != ArgBoolean {
			part += " <" + a.Type.String() + ">"
		}
		if !a.Required || a.HasDefault() {
			part = "[" + part + "]"
		}
		usage += " " + part
	}
	return usage
}

// Check verifies the definition is usable: it has a name, an Execute
// function and a well-formed schema.
func (c *Command) Check() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Execute == nil {
		return fmt.Errorf("%w: %s", ErrNoExecute, c.Name)
	}
	seen := make(map[string]bool, len(c.Args))
	for i := range c.Args {
		a := &c.Args[i]
		if a.Name == "" {
			return fmt.Errorf("command %q: argument %d has no name", c.Name, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("command %q: duplicate argument %q", c.Name, a.Name)
		}
		seen[a.Name] = true
		if a.HasDefault() {
			if _, err := normalizeDefault(a); err != nil {
				return fmt.Errorf("command %q: default for %q: %w", c.Name, a.Name, err)
			}
		}
	}
	return nil
}

package cmdline

import (
	"strings"

	"github.com/dshills/mindcmd/internal/command"
)

// ParsedCommand is the structured form of a command line.
type ParsedCommand struct {
	// Name is the command name as typed.
	Name string

	// Args holds named and positional arguments with raw values.
	Args command.Args

	// Raw is the original input.
	Raw string
}

// Parse tokenizes input and extracts the command name and arguments.
func Parse(input string) (*ParsedCommand, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 || tokens[0] == "" {
		return nil, &ParseError{Input: input, Pos: -1, Err: ErrEmpty}
	}

	return &ParsedCommand{
		Name: tokens[0],
		Args: ParseArguments(tokens[1:]),
		Raw:  input,
	}, nil
}

// ParseArguments converts the tokens following the command name into Args.
//
// "--name value" and "--name=value" set a string value, a "--name" followed by
// another "--" token (or by nothing) sets boolean true, and everything else is
// stored positionally under "_<index>".
func ParseArguments(tokens []string) command.Args {
	args := make(command.Args, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		name, isNamed := strings.CutPrefix(tok, "--")
		if !isNamed || name == "" {
			args[command.PositionalKey(i)] = command.String(tok)
			continue
		}

		if key, value, hasValue := strings.Cut(name, "="); hasValue && key != "" {
			args[key] = command.String(value)
			continue
		}

		if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "--") {
			args[name] = command.String(tokens[i+1])
			i++
			continue
		}

		args[name] = command.Bool(true)
	}

	return args
}

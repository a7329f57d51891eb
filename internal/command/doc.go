// Package command defines the command model shared by the parser, the registry
// and the dispatcher.
//
// A Command is a plain record: a name, optional aliases, an ordered argument
// schema and function fields for the guard and the action itself. There is no
// inheritance hierarchy; the registry keys commands by name and alias.
//
// # Arguments
//
// Parsed arguments are carried as Args, a map from argument name (or a
// synthesized positional key such as "_0") to a Value. A Value is a small sum
// type over string, number and boolean. Raw tokens enter as strings (or as
// boolean true for bare flags) and are narrowed by Normalize according to the
// declared ArgSpec. Command implementations receive already-normalized values
// and never re-parse strings themselves.
//
// # Validation
//
// Validate checks Args against a command's schema. Every violation is collected
// and reported in a single ValidationError so a caller sees all problems in one
// round trip:
//
//	args, err := command.Validate(parsed.Args, cmd)
//	var verr *command.ValidationError
//	if errors.As(err, &verr) {
//	    for _, p := range verr.Problems { ... }
//	}
//
// # Results
//
// Execution outcomes are reported as Result values. Success, Failure and
// Failuref build them; the dispatcher guarantees that every dispatch path ends
// in exactly one Result.
package command

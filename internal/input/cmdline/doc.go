// Package cmdline parses textual commands.
//
// The grammar is
//
//	<name> [--flag] [--name value] [--name=value] [positional ...]
//
// Tokens are separated by whitespace. Single or double quotes group text,
// including whitespace, into one token; inside quotes a backslash escapes the
// enclosing quote character or another backslash and is kept literally
// otherwise. Quote delimiters are removed from the token.
//
// Named arguments start with "--". When the following token does not itself
// start with "--" it becomes the argument's value; otherwise the argument is a
// boolean flag set to true. Every other token is positional and is stored
// under "_<i>", where i is the token's index after the command name, counting
// flags and flag values too:
//
//	add --child "Buy milk" later   ->  child="Buy milk", _2="later"
//
// Parsing is pure: the same input always yields an equal ParsedCommand.
package cmdline

package main

import (
	"sort"
	"strings"

	"github.com/dshills/mindcmd/internal/registry"
)

// completer implements readline.AutoCompleter over the command registry.
// The first word completes to command names and aliases; later words that
// start with "--" complete to the argument names of that command.
type completer struct {
	reg *registry.Registry
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(fields) == 0 || (len(fields) == 1 && !trailingSpace) {
		word := ""
		if len(fields) == 1 {
			word = fields[0]
		}
		return suffixes(word, c.names()), len([]rune(word))
	}

	cmd := c.reg.Get(fields[0])
	if cmd == nil || trailingSpace {
		return nil, 0
	}

	word := fields[len(fields)-1]
	if !strings.HasPrefix(word, "--") {
		return nil, 0
	}

	used := make(map[string]bool)
	for _, f := range fields[1 : len(fields)-1] {
		if name, ok := strings.CutPrefix(f, "--"); ok {
			used[name] = true
		}
	}

	var flags []string
	for _, a := range cmd.Args {
		if !used[a.Name] {
			flags = append(flags, "--"+a.Name)
		}
	}
	return suffixes(word, flags), len([]rune(word))
}

// names returns every command name and alias, sorted.
func (c *completer) names() []string {
	var out []string
	for _, cmd := range c.reg.All() {
		out = append(out, cmd.Names()...)
	}
	sort.Strings(out)
	return out
}

// suffixes returns the remainder of each candidate that starts with prefix,
// followed by a space.
func suffixes(prefix string, candidates []string) [][]rune {
	var out [][]rune
	for _, cand := range candidates {
		if rest, ok := strings.CutPrefix(cand, prefix); ok {
			out = append(out, []rune(rest+" "))
		}
	}
	return out
}

package registry

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/dshills/mindcmd/internal/command"
)

const (
	// MaxSuggestions caps the number of names Suggest returns.
	MaxSuggestions = 10

	// MaxEditDistance is the largest edit distance still suggested.
	MaxEditDistance = 2
)

// Suggest ranks command names against input.
//
// Names come in three tiers: commands whose name or an alias starts with the
// input (case-insensitive, in the given order), then commands whose name is
// within MaxEditDistance edits of the input, then fuzzy subsequence matches
// ranked by score. Duplicates are dropped and at most MaxSuggestions names are
// returned. An empty input returns the first MaxSuggestions names unranked.
func Suggest(input string, cmds []*command.Command) []string {
	out := make([]string, 0, MaxSuggestions)
	seen := make(map[string]bool)
	add := func(name string) bool {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
		return len(out) >= MaxSuggestions
	}

	if input == "" {
		for _, cmd := range cmds {
			if add(cmd.Name) {
				break
			}
		}
		return out
	}

	query := strings.ToLower(input)

	for _, cmd := range cmds {
		for _, name := range cmd.Names() {
			if strings.HasPrefix(strings.ToLower(name), query) {
				if add(cmd.Name) {
					return out
				}
				break
			}
		}
	}

	for _, cmd := range cmds {
		if Levenshtein(query, strings.ToLower(cmd.Name)) <= MaxEditDistance {
			if add(cmd.Name) {
				return out
			}
		}
	}

	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name
	}
	for _, m := range fuzzy.Find(input, names) {
		if add(m.Str) {
			return out
		}
	}

	return out
}

// Levenshtein returns the edit distance between a and b, counting insertions,
// deletions and substitutions of runes at cost 1.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

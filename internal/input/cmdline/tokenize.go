package cmdline

import (
	"strings"
	"unicode"
)

// Tokenize splits a command line into tokens, honoring quotes and escapes.
func Tokenize(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Input: input, Pos: -1, Err: ErrEmpty}
	}

	var (
		tokens    []string
		current   strings.Builder
		inToken   bool // distinguishes '' (an empty token) from no token
		quote     rune
		quoteOpen int
	)

	flush := func() {
		if inToken {
			tokens = append(tokens, current.String())
			current.Reset()
			inToken = false
		}
	}

	runes := []rune(input)
	offset := 0 // byte offset of runes[i]
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		width := len(string(r))

		switch {
		case quote != 0 && r == '\\' && i+1 < len(runes):
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i++
				offset += width + len(string(next))
				continue
			}
			current.WriteRune(r)

		case quote != 0 && r == quote:
			quote = 0

		case quote != 0:
			current.WriteRune(r)

		case r == '"' || r == '\'':
			quote = r
			quoteOpen = offset
			inToken = true

		case unicode.IsSpace(r):
			flush()

		default:
			current.WriteRune(r)
			inToken = true
		}
		offset += width
	}

	if quote != 0 {
		return nil, &ParseError{Input: input, Pos: quoteOpen, Err: ErrUnclosedQuote}
	}
	flush()

	return tokens, nil
}

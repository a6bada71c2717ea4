package command

import (
	"strings"
	"unicode"

	"github.com/smileynet/rolodex/internal/contact"
)

// Tokenize splits a command line on whitespace. Double quotes group words
// into one argument and are removed; "" yields an empty argument.
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				tokens = append(tokens, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, contact.InvalidArgument("Unclosed quote in command. Use 'help' for additional info.")
	}
	if started {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

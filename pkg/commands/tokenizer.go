package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quote toggles whitespace splitting. It cannot be escaped.
const Quote = '"'

// Split breaks a command line into tokens. Whitespace separates tokens unless
// it appears between double quotes. Each token is trimmed and loses one pair of
// enclosing quotes, if any; blank tokens are dropped. An unbalanced quote makes
// the remainder of the line quoted.
func Split(line string) []string {
	tokens := make([]string, 0, 4)
	inQuotes := false
	start := 0

	for i, r := range line {
		if r == Quote {
			inQuotes = !inQuotes
		}
		if !inQuotes && unicode.IsSpace(r) {
			tokens = appendToken(tokens, line[start:i])
			start = i + utf8.RuneLen(r)
		}
	}

	return appendToken(tokens, line[start:])
}

func appendToken(tokens []string, field string) []string {
	field = trimMatchingQuotes(strings.TrimSpace(field))
	if strings.TrimSpace(field) == "" {
		return tokens
	}
	return append(tokens, field)
}

func trimMatchingQuotes(field string) string {
	if len(field) >= 2 && field[0] == Quote && field[len(field)-1] == Quote {
		return field[1 : len(field)-1]
	}
	return field
}

// Join is the reverse of Split for tokens that do not contain quotes. Quotes are
// never escaped, so tokens containing both quotes and spaces split differently.
func Join(tokens []string) string {
	b := strings.Builder{}
	for i, token := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		if strings.IndexFunc(token, unicode.IsSpace) >= 0 {
			b.WriteRune(Quote)
			b.WriteString(token)
			b.WriteRune(Quote)
		} else {
			b.WriteString(token)
		}
	}
	return b.String()
}

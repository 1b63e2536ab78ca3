package core

import "strings"

// delimiters are the characters that separate tokens on a command line:
// space, tab, carriage return, newline and bell.
const delimiters = " \t\r\n\a"

// Tokenize splits a command line into tokens. Any run of delimiter characters
// separates tokens and is discarded, so no token is ever empty and a blank
// line produces no tokens at all. There is no quoting or escaping, a quote
// character is part of its token like anything else.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})
}

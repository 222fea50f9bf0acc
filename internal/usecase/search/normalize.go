package search

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for matching: lowercase, punctuation
// replaced by spaces, whitespace runs collapsed, trimmed. Word characters
// are letters, digits, combining marks, and underscore across all scripts,
// so Devanagari text survives intact. Idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	mapped := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))
	return strings.Join(strings.Fields(mapped), " ")
}

// isWordRune reports whether r survives normalization. Combining marks
// are kept so matras and conjuncts are not split out of Hindi words.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

package template

import (
	"strings"
	"unicode"
)

// Func normalizes a raw key to its template form. A Func must be pure and
// total: same input, same output, no side effects, never an error. Keys the
// rule does not cover should pass through unchanged.
type Func func(key string) string

// Identity returns the key unchanged. Useful as an explicit no-op rule.
func Identity(key string) string { return key }

// FoldDigits lowercases the key and folds every digit to '0'.
//
// This is the conventional rare-word template for tagger vocabularies: all
// numbers of the same shape share one template entity, and case variants of
// a rare word collapse onto a single form.
func FoldDigits(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return '0'
		}
		return unicode.ToLower(r)
	}, key)
}

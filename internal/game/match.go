package game

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldTR lowercases with Turkish casing rules so dotted and dotless I
// compare correctly ("GÖKKUŞAĞI" folds to "gökkuşağı", not "gökkuşaği").
func foldTR(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// containsFold is a case-insensitive substring match. A message containing
// the word anywhere counts, including inside a longer word.
func containsFold(text, word string) bool {
	if word == "" {
		return false
	}
	return strings.Contains(foldTR(text), foldTR(word))
}

// Challenge is one secret word with the related words the narrator may not
// say while describing it.
type Challenge struct {
	Word           string
	ForbiddenWords []string
}

// MatchForbidden returns the forbidden words the text contains.
func (c Challenge) MatchForbidden(text string) []string {
	folded := foldTR(text)
	var matched []string
	for _, w := range c.ForbiddenWords {
		if strings.Contains(folded, foldTR(w)) {
			matched = append(matched, w)
		}
	}
	return matched
}

package llm

import (
	"context"
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordPair is one generated challenge: a secret word plus the related words
// the narrator must avoid.
type WordPair struct {
	Word           string   `json:"turkishWord"`
	ForbiddenWords []string `json:"forbiddenWords"`
}

// Provider generates a fresh word pair. Implementations are stateless with
// respect to the game; repeats are filtered by the caller.
type Provider interface {
	Generate(ctx context.Context) (WordPair, error)
}

var ErrEmptyResult = errors.New("llm: generator returned an empty word pair")

// sanitize validates a decoded pair and drops forbidden entries that are
// empty or contain the target word itself.
func sanitize(pair WordPair) (WordPair, error) {
	if pair.Word == "" || len(pair.ForbiddenWords) == 0 {
		return WordPair{}, ErrEmptyResult
	}

	lower := cases.Lower(language.Turkish)
	word := lower.String(pair.Word)

	filtered := pair.ForbiddenWords[:0]
	for _, w := range pair.ForbiddenWords {
		if w == "" || lower.String(w) == word {
			continue
		}
		filtered = append(filtered, w)
	}
	if len(filtered) == 0 {
		return WordPair{}, ErrEmptyResult
	}

	pair.ForbiddenWords = filtered
	return pair, nil
}

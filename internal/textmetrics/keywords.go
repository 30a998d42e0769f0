package textmetrics

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// minKeywordLength is exclusive: tokens must be longer than this many runes.
const minKeywordLength = 3

var punctuationStripper = strings.NewReplacer(punctuationPairs()...)

func punctuationPairs() []string {
	const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	pairs := make([]string, 0, 2*len(asciiPunctuation))
	for _, r := range asciiPunctuation {
		pairs = append(pairs, string(r), "")
	}
	return pairs
}

// Keywords returns the n most frequent non stop-words of text. Equal
// frequencies keep first-occurrence order. n below one is an invalid argument.
func Keywords(text string, n int, lex *Lexicon) ([]types.KeywordEntry, error) {
	if n <= 0 {
		return nil, errors.NewInvalidArgumentError(
			fmt.Sprintf("keyword count must be at least 1, got %d", n)).
			WithContext("top_keywords", n)
	}

	entries := rankKeywords(text, lex)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// rankKeywords counts every keyword of text, sorted by descending frequency
// with first-occurrence order kept among equals.
func rankKeywords(text string, lex *Lexicon) []types.KeywordEntry {
	cleaned := punctuationStripper.Replace(strings.ToLower(text))

	counts := make(map[string]int)
	var order []string
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) <= minKeywordLength || lex.Contains(CategoryStopWords, tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	entries := make([]types.KeywordEntry, len(order))
	for i, word := range order {
		entries[i] = types.KeywordEntry{Word: word, Frequency: counts[word]}
	}
	slices.SortStableFunc(entries, func(a, b types.KeywordEntry) int {
		return b.Frequency - a.Frequency
	})
	return entries
}

package textmetrics

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"resumelens/internal/errors"

	"gopkg.in/yaml.v3"
)

// Category names a word set inside a Lexicon.
type Category string

const (
	CategoryPositive  Category = "positive"
	CategoryNegative  Category = "negative"
	CategoryStopWords Category = "stopwords"
)

// Lexicon maps categories to word sets. A Lexicon is immutable once built.
type Lexicon struct {
	sets map[Category]map[string]struct{}
}

// NewLexicon builds a Lexicon from category word lists. Words are
// lower-cased and trimmed; blanks are dropped.
func NewLexicon(categories map[Category][]string) *Lexicon {
	lex := &Lexicon{sets: make(map[Category]map[string]struct{}, len(categories))}
	for category, words := range categories {
		lex.sets[category] = toSet(words)
	}
	return lex
}

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *Lexicon {
	return NewLexicon(map[Category][]string{
		CategoryPositive:  defaultPositiveWords,
		CategoryNegative:  defaultNegativeWords,
		CategoryStopWords: defaultStopWords,
	})
}

// Contains reports whether word is in the category. word must already be lower-case.
func (l *Lexicon) Contains(category Category, word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.sets[category][word]
	return ok
}

// Words returns the sorted words of a category.
func (l *Lexicon) Words(category Category) []string {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.sets[category]))
}

// Size returns the number of words in a category.
func (l *Lexicon) Size(category Category) int {
	if l == nil {
		return 0
	}
	return len(l.sets[category])
}

// Categories returns the sorted category names.
func (l *Lexicon) Categories() []Category {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.sets))
}

// With returns a copy of l where every category in overrides replaces the
// existing set. Categories missing from overrides are kept.
func (l *Lexicon) With(overrides map[Category][]string) *Lexicon {
	merged := &Lexicon{sets: make(map[Category]map[string]struct{})}
	if l != nil {
		for category, set := range l.sets {
			merged.sets[category] = maps.Clone(set)
		}
	}
	for category, words := range overrides {
		merged.sets[category] = toSet(words)
	}
	return merged
}

// Stats returns the size of every category, keyed by name.
func (l *Lexicon) Stats() map[string]int {
	stats := make(map[string]int)
	for _, category := range l.Categories() {
		stats[string(category)] = l.Size(category)
	}
	return stats
}

// ParseLexicon decodes a YAML (or JSON) document of the form
// "category: [word, ...]".
func ParseLexicon(data []byte) (map[Category][]string, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidLexicon,
			"Lexicon document must map categories to word lists", err)
	}

	categories := make(map[Category][]string, len(raw))
	for name, words := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidLexicon,
				"Lexicon category name cannot be empty", nil)
		}
		categories[Category(name)] = words
	}
	return categories, nil
}

// LoadLexiconFile reads a lexicon document and layers it over the defaults.
func LoadLexiconFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("Lexicon file not found: %s", path), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read lexicon file: %s", path), err)
	}

	categories, err := ParseLexicon(data)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr.WithContext("file", path)
		}
		return nil, err
	}

	return DefaultLexicon().With(categories), nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Package textmetrics computes lexical statistics for a piece of text.
//
// The Engine exposes four independent measurements:
//
//   - Basic returns character, word, sentence and paragraph counts with averages.
//   - Sentiment scores the text against the positive and negative lexicon categories.
//   - Keywords ranks non stop-words by frequency.
//   - Readability estimates a Flesch reading-ease score and maps it to a level.
//
// Word lists come from a Lexicon, a mapping of category to word set, which
// can be replaced at runtime through a LexiconStore.
//
// Known limitations:
//   - Sentiment is bag-of-words: "not good" counts as positive.
//   - No intensifier or sarcasm handling.
//   - Syllables are estimated from vowel groups, not a dictionary.
//
// Every function is pure over its input and the lexicon it was given, and is
// safe for concurrent use by multiple goroutines.
package textmetrics

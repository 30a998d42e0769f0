package textmetrics

import (
	"strings"
	"unicode/utf8"

	"resumelens/internal/types"
)

// Basic computes counts and averages for text. Only the literal space
// character is excluded from CharNoSpaces; tabs and newlines still count.
func Basic(text string) types.BasicMetrics {
	words := Words(text)
	sentences := Sentences(text)

	charCount := utf8.RuneCountInString(text)

	totalWordLen := 0
	for _, w := range words {
		totalWordLen += utf8.RuneCountInString(w)
	}

	return types.BasicMetrics{
		CharCount:         charCount,
		CharNoSpaces:      charCount - strings.Count(text, " "),
		WordCount:         len(words),
		SentenceCount:     len(sentences),
		ParagraphCount:    len(Paragraphs(text)),
		AvgWordLength:     round(float64(totalWordLen)/float64(max(len(words), 1)), 2),
		AvgSentenceLength: round(float64(len(words))/float64(max(len(sentences), 1)), 2),
	}
}

package textmetrics

import (
	"strings"

	"resumelens/internal/types"
)

// Flesch reading-ease coefficients.
const (
	fleschBase           = 206.835
	fleschSentenceWeight = 1.015
	fleschSyllableWeight = 84.6
	minReadabilityScore  = 0.0
	maxReadabilityScore  = 100.0
	vowels               = "aeiouy"
	silentTrailingVowel  = "e"
	minSyllablesPerWord  = 1
)

type readingBand struct {
	min   float64
	level string
}

// readingBands is ordered by descending lower bound.
var readingBands = []readingBand{
	{90, "Very Easy (5th grade)"},
	{80, "Easy (6th grade)"},
	{70, "Fairly Easy (7th grade)"},
	{60, "Standard (8th-9th grade)"},
	{50, "Fairly Difficult (10th-12th grade)"},
	{30, "Difficult (College)"},
}

const lowestReadingLevel = "Very Difficult (College Graduate)"

// Readability computes the Flesch reading-ease score of text, clamped to
// [0,100] and rounded to one decimal. Text without words or sentences scores
// 0 with level Unknown.
func Readability(text string) types.ReadabilityResult {
	words := Words(text)
	sentences := Sentences(text)
	if len(words) == 0 || len(sentences) == 0 {
		return types.ReadabilityResult{Score: 0, Level: types.ReadabilityUnknown}
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	wordCount := float64(len(words))
	score := fleschBase -
		fleschSentenceWeight*(wordCount/float64(len(sentences))) -
		fleschSyllableWeight*(float64(syllables)/wordCount)

	score = round(min(max(score, minReadabilityScore), maxReadabilityScore), 1)
	return types.ReadabilityResult{Score: score, Level: ReadingLevel(score)}
}

// CountSyllables estimates syllables as the number of vowel groups, minus one
// for a trailing 'e', with a floor of one.
func CountSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	if strings.HasSuffix(word, silentTrailingVowel) {
		count--
	}
	return max(count, minSyllablesPerWord)
}

// ReadingLevel maps a reading-ease score to its grade band.
func ReadingLevel(score float64) string {
	for _, band := range readingBands {
		if score >= band.min {
			return band.level
		}
	}
	return lowestReadingLevel
}

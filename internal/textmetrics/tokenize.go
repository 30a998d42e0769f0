package textmetrics

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentenceTerminators = regexp.MustCompile(`[.!?]+`)
	wordPattern         = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

const paragraphSeparator = "\n\n"

// Words splits text on runs of whitespace. Punctuation stays attached.
func Words(text string) []string {
	return strings.Fields(text)
}

// Sentences splits text on runs of '.', '!' or '?' and drops empty pieces.
func Sentences(text string) []string {
	return splitTrimmed(sentenceTerminators.Split(text, -1))
}

// Paragraphs splits text on blank lines ("\n\n") and drops empty pieces.
func Paragraphs(text string) []string {
	return splitTrimmed(strings.Split(text, paragraphSeparator))
}

// wordTokens lower-cases text and extracts letter/digit/underscore runs.
func wordTokens(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func splitTrimmed(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// round rounds x half away from zero to the given number of decimals.
func round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

package textmetrics

import "resumelens/internal/types"

const (
	neutralSentimentScore = 50.0
	positiveThreshold     = 60.0
	negativeThreshold     = 40.0
)

// Sentiment counts positive and negative lexicon hits in text.
// Text with no hits is Neutral with a score of exactly 50.
func Sentiment(text string, lex *Lexicon) types.SentimentResult {
	pos, neg := 0, 0
	for _, tok := range wordTokens(text) {
		if lex.Contains(CategoryPositive, tok) {
			pos++
		}
		if lex.Contains(CategoryNegative, tok) {
			neg++
		}
	}

	if pos+neg == 0 {
		return types.SentimentResult{
			Label: types.SentimentNeutral,
			Score: neutralSentimentScore,
		}
	}

	score := round(100*float64(pos)/float64(pos+neg), 1)
	return types.SentimentResult{
		Label:         SentimentLabelFor(score),
		Score:         score,
		PositiveWords: pos,
		NegativeWords: neg,
	}
}

// SentimentLabelFor maps a 0-100 score to a label.
func SentimentLabelFor(score float64) types.SentimentLabel {
	switch {
	case score > positiveThreshold:
		return types.SentimentPositive
	case score < negativeThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

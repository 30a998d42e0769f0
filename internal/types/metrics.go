package types

import "time"

// SentimentLabel is the polarity assigned to a text
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// ReadabilityUnknown is the level reported when no score can be computed.
const ReadabilityUnknown = "Unknown"

// AnalysisInput represents the input for a text analysis
type AnalysisInput struct {
	Text        string `json:"text" yaml:"text"`
	TopKeywords int    `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

// BasicMetrics holds counts and averages for a text
type BasicMetrics struct {
	CharCount         int     `json:"char_count" yaml:"char_count"`
	CharNoSpaces      int     `json:"char_no_spaces" yaml:"char_no_spaces"`
	WordCount         int     `json:"word_count" yaml:"word_count"`
	SentenceCount     int     `json:"sentence_count" yaml:"sentence_count"`
	ParagraphCount    int     `json:"paragraph_count" yaml:"paragraph_count"`
	AvgWordLength     float64 `json:"avg_word_length" yaml:"avg_word_length"`
	AvgSentenceLength float64 `json:"avg_sentence_length" yaml:"avg_sentence_length"`
}

// SentimentResult holds the lexicon sentiment of a text
type SentimentResult struct {
	Label         SentimentLabel `json:"label" yaml:"label"`
	Score         float64        `json:"score" yaml:"score"` // 0-100
	PositiveWords int            `json:"positive_words" yaml:"positive_words"`
	NegativeWords int            `json:"negative_words" yaml:"negative_words"`
}

// KeywordEntry is a ranked keyword with its frequency
type KeywordEntry struct {
	Word      string `json:"word" yaml:"word"`
	Frequency int    `json:"frequency" yaml:"frequency"`
}

// ReadabilityResult holds a Flesch reading-ease score and its level
type ReadabilityResult struct {
	Score float64 `json:"score" yaml:"score"` // 0-100
	Level string  `json:"level" yaml:"level"`
}

// TextAnalysis bundles every metric computed for one text
type TextAnalysis struct {
	Basic       BasicMetrics      `json:"basic" yaml:"basic"`
	Sentiment   SentimentResult   `json:"sentiment" yaml:"sentiment"`
	Keywords    []KeywordEntry    `json:"keywords" yaml:"keywords"`
	Readability ReadabilityResult `json:"readability" yaml:"readability"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
}

// DocumentAnalysis is a TextAnalysis tagged with where the text came from
type DocumentAnalysis struct {
	Source   string       `json:"source" yaml:"source"`
	Analysis TextAnalysis `json:"analysis" yaml:"analysis"`
}

// MatchResult compares resume keywords against job description keywords
type MatchResult struct {
	Score          float64        `json:"score" yaml:"score"` // percent of job keywords covered
	Matched        []string       `json:"matched" yaml:"matched"`
	Missing        []string       `json:"missing" yaml:"missing"`
	ResumeKeywords []KeywordEntry `json:"resume_keywords" yaml:"resume_keywords"`
	JobKeywords    []KeywordEntry `json:"job_keywords" yaml:"job_keywords"`
}

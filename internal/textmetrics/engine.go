package textmetrics

import (
	"time"

	"resumelens/internal/types"
)

// Engine runs every measurement against a fixed Lexicon.
type Engine struct {
	lexicon *Lexicon
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to stamp TextAnalysis.GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine. A nil lexicon selects DefaultLexicon.
func NewEngine(lex *Lexicon, opts ...Option) *Engine {
	if lex == nil {
		lex = DefaultLexicon()
	}
	e := &Engine{
		lexicon: lex,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lexicon returns the word sets the engine scores against.
func (e *Engine) Lexicon() *Lexicon {
	return e.lexicon
}

func (e *Engine) Basic(text string) types.BasicMetrics {
	return Basic(text)
}

func (e *Engine) Sentiment(text string) types.SentimentResult {
	return Sentiment(text, e.lexicon)
}

func (e *Engine) Keywords(text string, n int) ([]types.KeywordEntry, error) {
	return Keywords(text, n, e.lexicon)
}

func (e *Engine) Readability(text string) types.ReadabilityResult {
	return Readability(text)
}

// Analyze runs all four measurements. The only failure is an invalid topN.
func (e *Engine) Analyze(text string, topN int) (types.TextAnalysis, error) {
	keywords, err := e.Keywords(text, topN)
	if err != nil {
		return types.TextAnalysis{}, err
	}

	return types.TextAnalysis{
		Basic:       e.Basic(text),
		Sentiment:   e.Sentiment(text),
		Keywords:    keywords,
		Readability: e.Readability(text),
		GeneratedAt: e.now(),
	}, nil
}

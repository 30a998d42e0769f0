package formatters

import (
	"fmt"
	"strings"

	"resumelens/internal/history"
	"resumelens/internal/types"
)

// AnalysisTextFormatter handles text formatting for a single analysis
type AnalysisTextFormatter struct{}

func (f *AnalysisTextFormatter) Format(data any) (string, error) {
	analysis, ok := data.(types.TextAnalysis)
	if !ok {
		return "", fmt.Errorf("expected TextAnalysis, got %T", data)
	}

	var output strings.Builder
	writeAnalysisText(&output, analysis)
	return output.String(), nil
}

func (f *AnalysisTextFormatter) SupportedType() string { return TypeTextAnalysis }

func writeAnalysisText(output *strings.Builder, a types.TextAnalysis) {
	output.WriteString("=== BASIC METRICS ===\n")
	fmt.Fprintf(output, "Characters: %d (%d without spaces)\n", a.Basic.CharCount, a.Basic.CharNoSpaces)
	fmt.Fprintf(output, "Words: %d\n", a.Basic.WordCount)
	fmt.Fprintf(output, "Sentences: %d\n", a.Basic.SentenceCount)
	fmt.Fprintf(output, "Paragraphs: %d\n", a.Basic.ParagraphCount)
	fmt.Fprintf(output, "Average word length: %.1f\n", a.Basic.AvgWordLength)
	fmt.Fprintf(output, "Average sentence length: %.1f words\n\n", a.Basic.AvgSentenceLength)

	output.WriteString("=== SENTIMENT ===\n")
	fmt.Fprintf(output, "%s (%.1f/100)\n", a.Sentiment.Label, a.Sentiment.Score)
	fmt.Fprintf(output, "Positive words: %d, negative words: %d\n\n", a.Sentiment.PositiveWords, a.Sentiment.NegativeWords)

	output.WriteString("=== READABILITY ===\n")
	fmt.Fprintf(output, "%s (%.1f/100)\n\n", a.Readability.Level, a.Readability.Score)

	output.WriteString("=== TOP KEYWORDS ===\n")
	writeKeywordsText(output, a.Keywords)
}

func writeKeywordsText(output *strings.Builder, keywords []types.KeywordEntry) {
	if len(keywords) == 0 {
		output.WriteString("(none)\n")
		return
	}
	for i, k := range keywords {
		fmt.Fprintf(output, "%2d. %-20s %d\n", i+1, k.Word, k.Frequency)
	}
}

// DocumentsTextFormatter handles text formatting for multi-document runs
type DocumentsTextFormatter struct{}

func (f *DocumentsTextFormatter) Format(data any) (string, error) {
	docs, ok := data.([]types.DocumentAnalysis)
	if !ok {
		return "", fmt.Errorf("expected []DocumentAnalysis, got %T", data)
	}

	var output strings.Builder
	for i, doc := range docs {
		if i > 0 {
			output.WriteString("\n")
		}
		fmt.Fprintf(&output, "##### %s #####\n\n", doc.Source)
		writeAnalysisText(&output, doc.Analysis)
	}
	return output.String(), nil
}

func (f *DocumentsTextFormatter) SupportedType() string { return TypeDocuments }

// ReviewTextFormatter handles text formatting for AI resume reviews
type ReviewTextFormatter struct{}

func (f *ReviewTextFormatter) Format(data any) (string, error) {
	review, ok := data.(types.ResumeReview)
	if !ok {
		return "", fmt.Errorf("expected ResumeReview, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== OVERALL SCORE ===\n")
	fmt.Fprintf(&output, "%d/100 - %s\n\n", review.OverallScore, review.Verdict())

	writeTextList(&output, "STRENGTHS", review.Strengths)
	writeTextList(&output, "WEAKNESSES", review.Weaknesses)

	output.WriteString("=== KEYWORD ANALYSIS ===\n")
	fmt.Fprintf(&output, "Present: %s\n", joinOrNone(review.KeywordAnalysis.Present))
	fmt.Fprintf(&output, "Missing: %s\n\n", joinOrNone(review.KeywordAnalysis.Missing))

	output.WriteString("=== SECTION FEEDBACK ===\n")
	fmt.Fprintf(&output, "Summary: %s\n", review.SectionsFeedback.Summary)
	fmt.Fprintf(&output, "Experience: %s\n", review.SectionsFeedback.Experience)
	fmt.Fprintf(&output, "Education: %s\n", review.SectionsFeedback.Education)
	fmt.Fprintf(&output, "Skills: %s\n\n", review.SectionsFeedback.Skills)

	output.WriteString("=== SCORES ===\n")
	fmt.Fprintf(&output, "Formatting: %d/100\n", review.FormattingScore)
	fmt.Fprintf(&output, "ATS compatibility: %d/100\n\n", review.ATSCompatibility)

	output.WriteString("=== RECOMMENDATIONS ===\n")
	for i, rec := range review.Recommendations {
		fmt.Fprintf(&output, "%d. %s\n", i+1, rec)
	}

	return output.String(), nil
}

func (f *ReviewTextFormatter) SupportedType() string { return TypeResumeReview }

func writeTextList(output *strings.Builder, title string, items []string) {
	fmt.Fprintf(output, "=== %s ===\n", title)
	for _, item := range items {
		fmt.Fprintf(output, "- %s\n", item)
	}
	output.WriteString("\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// MatchTextFormatter handles text formatting for keyword matches
type MatchTextFormatter struct{}

func (f *MatchTextFormatter) Format(data any) (string, error) {
	match, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== KEYWORD MATCH ===\n")
	fmt.Fprintf(&output, "Score: %.1f%%\n", match.Score)
	fmt.Fprintf(&output, "Matched: %s\n", joinOrNone(match.Matched))
	fmt.Fprintf(&output, "Missing: %s\n\n", joinOrNone(match.Missing))

	output.WriteString("=== JOB KEYWORDS ===\n")
	writeKeywordsText(&output, match.JobKeywords)
	output.WriteString("\n=== RESUME KEYWORDS ===\n")
	writeKeywordsText(&output, match.ResumeKeywords)

	return output.String(), nil
}

func (f *MatchTextFormatter) SupportedType() string { return TypeMatchResult }

// KeywordsTextFormatter handles text formatting for keyword lists
type KeywordsTextFormatter struct{}

func (f *KeywordsTextFormatter) Format(data any) (string, error) {
	keywords, ok := data.([]types.KeywordEntry)
	if !ok {
		return "", fmt.Errorf("expected []KeywordEntry, got %T", data)
	}

	var output strings.Builder
	writeKeywordsText(&output, keywords)
	return output.String(), nil
}

func (f *KeywordsTextFormatter) SupportedType() string { return TypeKeywords }

// HistoryTextFormatter handles text formatting for analysis history
type HistoryTextFormatter struct{}

func (f *HistoryTextFormatter) Format(data any) (string, error) {
	entries, ok := data.([]history.Entry)
	if !ok {
		return "", fmt.Errorf("expected []history.Entry, got %T", data)
	}

	var output strings.Builder
	fmt.Fprintf(&output, "=== HISTORY (%d) ===\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&output, "%s  %-20s words=%d sentiment=%s readability=%.1f  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Source,
			e.Analysis.Basic.WordCount,
			e.Analysis.Sentiment.Label,
			e.Analysis.Readability.Score,
			e.Preview)
	}
	return output.String(), nil
}

func (f *HistoryTextFormatter) SupportedType() string { return TypeHistoryEntries }

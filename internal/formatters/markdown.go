package formatters

import (
	"fmt"
	"strings"

	"resumelens/internal/history"
	"resumelens/internal/types"
)

// AnalysisMarkdownFormatter handles markdown formatting for a single analysis
type AnalysisMarkdownFormatter struct{}

func (f *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	analysis, ok := data.(types.TextAnalysis)
	if !ok {
		return "", fmt.Errorf("expected TextAnalysis, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Text Analysis\n\n")
	writeAnalysisMarkdown(&output, analysis, "##")
	return output.String(), nil
}

func (f *AnalysisMarkdownFormatter) SupportedType() string { return TypeTextAnalysis }

func writeAnalysisMarkdown(output *strings.Builder, a types.TextAnalysis, heading string) {
	fmt.Fprintf(output, "%s Basic Metrics\n\n", heading)
	output.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(output, "| Characters | %d |\n", a.Basic.CharCount)
	fmt.Fprintf(output, "| Characters (no spaces) | %d |\n", a.Basic.CharNoSpaces)
	fmt.Fprintf(output, "| Words | %d |\n", a.Basic.WordCount)
	fmt.Fprintf(output, "| Sentences | %d |\n", a.Basic.SentenceCount)
	fmt.Fprintf(output, "| Paragraphs | %d |\n", a.Basic.ParagraphCount)
	fmt.Fprintf(output, "| Avg word length | %.1f |\n", a.Basic.AvgWordLength)
	fmt.Fprintf(output, "| Avg sentence length | %.1f |\n\n", a.Basic.AvgSentenceLength)

	fmt.Fprintf(output, "%s Sentiment\n\n", heading)
	fmt.Fprintf(output, "**%s** (%.1f/100): %d positive, %d negative words\n\n",
		a.Sentiment.Label, a.Sentiment.Score, a.Sentiment.PositiveWords, a.Sentiment.NegativeWords)

	fmt.Fprintf(output, "%s Readability\n\n", heading)
	fmt.Fprintf(output, "**%s** (%.1f/100)\n\n", a.Readability.Level, a.Readability.Score)

	fmt.Fprintf(output, "%s Top Keywords\n\n", heading)
	writeKeywordsMarkdown(output, a.Keywords)
}

func writeKeywordsMarkdown(output *strings.Builder, keywords []types.KeywordEntry) {
	if len(keywords) == 0 {
		output.WriteString("_None_\n")
		return
	}
	output.WriteString("| # | Keyword | Frequency |\n|---|---|---|\n")
	for i, k := range keywords {
		fmt.Fprintf(output, "| %d | %s | %d |\n", i+1, k.Word, k.Frequency)
	}
}

// DocumentsMarkdownFormatter handles markdown formatting for multi-document runs
type DocumentsMarkdownFormatter struct{}

func (f *DocumentsMarkdownFormatter) Format(data any) (string, error) {
	docs, ok := data.([]types.DocumentAnalysis)
	if !ok {
		return "", fmt.Errorf("expected []DocumentAnalysis, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Text Analysis\n")
	for _, doc := range docs {
		fmt.Fprintf(&output, "\n## %s\n\n", doc.Source)
		writeAnalysisMarkdown(&output, doc.Analysis, "###")
	}
	return output.String(), nil
}

func (f *DocumentsMarkdownFormatter) SupportedType() string { return TypeDocuments }

// ReviewMarkdownFormatter handles markdown formatting for AI resume reviews
type ReviewMarkdownFormatter struct{}

func (f *ReviewMarkdownFormatter) Format(data any) (string, error) {
	review, ok := data.(types.ResumeReview)
	if !ok {
		return "", fmt.Errorf("expected ResumeReview, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Review\n\n")
	fmt.Fprintf(&output, "**Overall Score:** %d/100 (%s)\n\n", review.OverallScore, review.Verdict())

	writeMarkdownList(&output, "Strengths", review.Strengths)
	writeMarkdownList(&output, "Weaknesses", review.Weaknesses)

	output.WriteString("## Keyword Analysis\n\n")
	fmt.Fprintf(&output, "- **Present:** %s\n", joinOrNone(review.KeywordAnalysis.Present))
	fmt.Fprintf(&output, "- **Missing:** %s\n\n", joinOrNone(review.KeywordAnalysis.Missing))

	output.WriteString("## Section Feedback\n\n")
	fmt.Fprintf(&output, "### Summary\n%s\n\n", review.SectionsFeedback.Summary)
	fmt.Fprintf(&output, "### Experience\n%s\n\n", review.SectionsFeedback.Experience)
	fmt.Fprintf(&output, "### Education\n%s\n\n", review.SectionsFeedback.Education)
	fmt.Fprintf(&output, "### Skills\n%s\n\n", review.SectionsFeedback.Skills)

	output.WriteString("## Scores\n\n")
	fmt.Fprintf(&output, "- **Formatting:** %d/100\n", review.FormattingScore)
	fmt.Fprintf(&output, "- **ATS Compatibility:** %d/100\n\n", review.ATSCompatibility)

	output.WriteString("## Recommendations\n\n")
	for i, rec := range review.Recommendations {
		fmt.Fprintf(&output, "%d. %s\n", i+1, rec)
	}

	return output.String(), nil
}

func (f *ReviewMarkdownFormatter) SupportedType() string { return TypeResumeReview }

func writeMarkdownList(output *strings.Builder, title string, items []string) {
	fmt.Fprintf(output, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(output, "- %s\n", item)
	}
	output.WriteString("\n")
}

// MatchMarkdownFormatter handles markdown formatting for keyword matches
type MatchMarkdownFormatter struct{}

func (f *MatchMarkdownFormatter) Format(data any) (string, error) {
	match, ok := data.(types.MatchResult)
	if !ok {
		return "", fmt.Errorf("expected MatchResult, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Keyword Match\n\n")
	fmt.Fprintf(&output, "**Score:** %.1f%%\n\n", match.Score)
	fmt.Fprintf(&output, "- **Matched:** %s\n", joinOrNone(match.Matched))
	fmt.Fprintf(&output, "- **Missing:** %s\n\n", joinOrNone(match.Missing))

	output.WriteString("## Job Keywords\n\n")
	writeKeywordsMarkdown(&output, match.JobKeywords)
	output.WriteString("\n## Resume Keywords\n\n")
	writeKeywordsMarkdown(&output, match.ResumeKeywords)

	return output.String(), nil
}

func (f *MatchMarkdownFormatter) SupportedType() string { return TypeMatchResult }

// KeywordsMarkdownFormatter handles markdown formatting for keyword lists
type KeywordsMarkdownFormatter struct{}

func (f *KeywordsMarkdownFormatter) Format(data any) (string, error) {
	keywords, ok := data.([]types.KeywordEntry)
	if !ok {
		return "", fmt.Errorf("expected []KeywordEntry, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Keywords\n\n")
	writeKeywordsMarkdown(&output, keywords)
	return output.String(), nil
}

func (f *KeywordsMarkdownFormatter) SupportedType() string { return TypeKeywords }

// HistoryMarkdownFormatter handles markdown formatting for analysis history
type HistoryMarkdownFormatter struct{}

func (f *HistoryMarkdownFormatter) Format(data any) (string, error) {
	entries, ok := data.([]history.Entry)
	if !ok {
		return "", fmt.Errorf("expected []history.Entry, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Analysis History\n\n")
	if len(entries) == 0 {
		output.WriteString("_Empty_\n")
		return output.String(), nil
	}
	output.WriteString("| Time | Source | Words | Sentiment | Readability | Preview |\n|---|---|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&output, "| %s | %s | %d | %s | %.1f | %s |\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Source,
			e.Analysis.Basic.WordCount,
			e.Analysis.Sentiment.Label,
			e.Analysis.Readability.Score,
			strings.ReplaceAll(e.Preview, "|", `\|`))
	}
	return output.String(), nil
}

func (f *HistoryMarkdownFormatter) SupportedType() string { return TypeHistoryEntries }

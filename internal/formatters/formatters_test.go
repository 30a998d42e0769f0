package formatters

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
	"resumelens/internal/history"
	"resumelens/internal/types"
)

func sampleAnalysis() types.TextAnalysis {
	return types.TextAnalysis{
		Basic: types.BasicMetrics{
			CharCount: 44, CharNoSpaces: 36, WordCount: 9, SentenceCount: 2,
			ParagraphCount: 1, AvgWordLength: 4, AvgSentenceLength: 4.5,
		},
		Sentiment:   types.SentimentResult{Label: types.SentimentPositive, Score: 100, PositiveWords: 1},
		Keywords:    []types.KeywordEntry{{Word: "golang", Frequency: 2}, {Word: "services", Frequency: 1}},
		Readability: types.ReadabilityResult{Score: 72.3, Level: "Fairly Easy"},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func sampleReview() types.ResumeReview {
	return types.ResumeReview{
		OverallScore:     65,
		Strengths:        []string{"Clear structure"},
		Weaknesses:       []string{"Few metrics"},
		KeywordAnalysis:  types.KeywordAnalysis{Present: []string{"Go"}, Missing: []string{"Kubernetes"}},
		SectionsFeedback: types.SectionsFeedback{Summary: "Concise", Experience: "Strong", Education: "Fine", Skills: "Broad"},
		FormattingScore:  80,
		ATSCompatibility: 70,
		Recommendations:  []string{"Quantify impact", "Add a skills matrix"},
	}
}

func TestRegistryFormats(t *testing.T) {
	registry := NewFormatterRegistry()

	got := registry.GetSupportedFormats()
	want := []string{"json", "markdown", "text", "yaml"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("GetSupportedFormats() = %v, want %v", got, want)
	}

	if _, err := registry.Format(sampleAnalysis(), "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
	if _, err := registry.Format(map[string]int{"a": 1}, "text"); err == nil {
		t.Error("Expected error for text formatting of an unknown type")
	}
}

func TestJSONAndYAMLUseSnakeCase(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleAnalysis(), "json")
	if err != nil {
		t.Fatalf("JSON format failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	basic := decoded["basic"].(map[string]any)
	if basic["char_no_spaces"].(float64) != 36 {
		t.Errorf("Unexpected char_no_spaces: %v", basic["char_no_spaces"])
	}

	out, err = registry.Format(sampleAnalysis(), "yaml")
	if err != nil {
		t.Fatalf("YAML format failed: %v", err)
	}
	var decodedYAML types.TextAnalysis
	if err := yaml.Unmarshal([]byte(out), &decodedYAML); err != nil {
		t.Fatalf("Invalid YAML output: %v", err)
	}
	if decodedYAML.Readability.Level != "Fairly Easy" || len(decodedYAML.Keywords) != 2 {
		t.Errorf("YAML did not round trip: %+v", decodedYAML)
	}
	if !strings.Contains(out, "avg_sentence_length: 4.5") {
		t.Errorf("Expected snake_case YAML keys, got:\n%s", out)
	}
}

func TestTextFormatters(t *testing.T) {
	registry := NewFormatterRegistry()
	entry := history.NewEntry("resume.txt", "Golang services engineer", sampleAnalysis())

	tests := []struct {
		name     string
		data     any
		contains []string
	}{
		{"analysis", sampleAnalysis(), []string{"=== BASIC METRICS ===", "Words: 9", "Positive (100.0/100)", "Fairly Easy (72.3/100)", "golang"}},
		{"documents", []types.DocumentAnalysis{{Source: "a.txt", Analysis: sampleAnalysis()}, {Source: "b.md", Analysis: sampleAnalysis()}}, []string{"##### a.txt #####", "##### b.md #####"}},
		{"review", sampleReview(), []string{"65/100 - Good", "- Clear structure", "Missing: Kubernetes", "2. Add a skills matrix"}},
		{"match", types.MatchResult{Score: 50, Matched: []string{"golang"}, Missing: []string{"terraform"}}, []string{"Score: 50.0%", "Matched: golang", "Missing: terraform", "(none)"}},
		{"keywords", sampleAnalysis().Keywords, []string{" 1. golang", " 2. services"}},
		{"history", []history.Entry{entry}, []string{"=== HISTORY (1) ===", "resume.txt", "2026-01-02 03:04:05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Format(tt.data, "text")
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestMarkdownFormatters(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name     string
		data     any
		contains []string
	}{
		{"analysis", sampleAnalysis(), []string{"# Text Analysis", "## Basic Metrics", "| Words | 9 |", "| 1 | golang | 2 |"}},
		{"documents", []types.DocumentAnalysis{{Source: "a.txt", Analysis: sampleAnalysis()}}, []string{"## a.txt", "### Readability"}},
		{"review", sampleReview(), []string{"# Resume Review", "**Overall Score:** 65/100 (Good)", "### Skills\nBroad", "- **ATS Compatibility:** 70/100"}},
		{"match", types.MatchResult{Score: 100, Matched: []string{"go"}}, []string{"**Score:** 100.0%", "- **Missing:** (none)", "_None_"}},
		{"empty history", []history.Entry{}, []string{"# Analysis History", "_Empty_"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Format(tt.data, "markdown")
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestFormatterTypeMismatch(t *testing.T) {
	formatters := []Formatter{
		&AnalysisTextFormatter{}, &ReviewTextFormatter{}, &MatchTextFormatter{},
		&AnalysisMarkdownFormatter{}, &ReviewMarkdownFormatter{}, &HistoryMarkdownFormatter{},
	}
	for _, f := range formatters {
		if _, err := f.Format("not the right type"); err == nil {
			t.Errorf("%T accepted a string", f)
		}
	}
}

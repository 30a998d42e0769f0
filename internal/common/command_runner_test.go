package common

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumelens/internal/ai"
	"resumelens/internal/types"
)

func TestRunAICommand(t *testing.T) {
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	out := filepath.Join(dir, "review.json")
	writeFile(t, resume, "Senior engineer with Go experience.")

	var gotInput types.ReviewResumeInput
	review, err := RunAICommand(
		context.Background(), nil,
		CommandConfig{OutputFile: out, OutputFormat: "json"},
		[]string{resume},
		func(contents []string) (types.ReviewResumeInput, error) {
			return types.ReviewResumeInput{ResumeText: contents[0], Industry: "Technology"}, nil
		},
		func(_ context.Context, in types.ReviewResumeInput) (types.ResumeReview, *ai.TokenUsage, error) {
			gotInput = in
			return types.ResumeReview{OverallScore: 72}, &ai.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, nil
		},
		nil,
	)
	if err != nil {
		t.Fatalf("RunAICommand() error: %v", err)
	}
	if review.OverallScore != 72 {
		t.Errorf("Expected returned review, got %+v", review)
	}
	if !strings.Contains(gotInput.ResumeText, "Go experience") {
		t.Errorf("Input not built from file: %+v", gotInput)
	}
	data, err := os.ReadFile(out)
	if err != nil || !strings.Contains(string(data), `"overall_score": 72`) {
		t.Errorf("Expected JSON output file, got %s (%v)", data, err)
	}
}

func TestRunAICommandPropagatesErrors(t *testing.T) {
	resume := filepath.Join(t.TempDir(), "resume.txt")
	writeFile(t, resume, "text")
	want := errors.New("provider down")

	_, err := RunAICommand(
		context.Background(), nil,
		CommandConfig{OutputFormat: "json"},
		[]string{resume},
		func(contents []string) (string, error) { return contents[0], nil },
		func(context.Context, string) (string, *ai.TokenUsage, error) { return "", nil, want },
		func(string, CommandConfig) {},
	)
	if !errors.Is(err, want) {
		t.Errorf("Expected provider error, got %v", err)
	}
}

func TestRunLocalCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	out := filepath.Join(dir, "out.txt")
	writeFile(t, a, "one")
	writeFile(t, b, "two")

	err := RunLocalCommand(nil, CommandConfig{OutputFile: out, OutputFormat: "text"}, []string{a, b},
		func(contents []string) (types.MatchResult, error) {
			return types.MatchResult{Matched: contents}, nil
		})
	if err != nil {
		t.Fatalf("RunLocalCommand() error: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "Matched: one, two") {
		t.Errorf("Unexpected output:\n%s", data)
	}

	if err := RunLocalCommand(nil, CommandConfig{OutputFormat: "text"}, []string{filepath.Join(dir, "nope.txt")},
		func([]string) (types.MatchResult, error) { return types.MatchResult{}, nil }); err == nil {
		t.Error("Expected error for missing file")
	}
}

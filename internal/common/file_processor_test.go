package common

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumelens/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func errorCode(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func TestReadFileLimits(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.txt")
	big := filepath.Join(dir, "big.txt")
	binary := filepath.Join(dir, "bad.txt")
	writeFile(t, ok, "short text")
	writeFile(t, big, strings.Repeat("a", 64))
	writeFile(t, binary, "\xff\xfe\xfd")

	fp := NewFileProcessor(nil, 32)

	content, err := fp.ReadFile(ok)
	if err != nil || content != "short text" {
		t.Fatalf("ReadFile() = %q, %v", content, err)
	}

	tests := []struct {
		name string
		file string
		code string
	}{
		{"missing", filepath.Join(dir, "missing.txt"), errors.ErrCodeFileNotFound},
		{"too large", big, errors.ErrCodeFileTooLarge},
		{"invalid utf8", binary, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fp.ReadFile(tt.file)
			if got := errorCode(err); got != tt.code {
				t.Errorf("Expected code %s, got %s (%v)", tt.code, got, err)
			}
		})
	}
}

func TestValidateAndReadFilesTooLarge(t *testing.T) {
	big := filepath.Join(t.TempDir(), "big.md")
	writeFile(t, big, strings.Repeat("word ", 20))

	_, err := NewFileProcessor(nil, 10).ValidateAndReadFiles(big)
	if got := errorCode(err); got != errors.ErrCodeFileTooLarge {
		t.Errorf("Expected %s, got %s (%v)", errors.ErrCodeFileTooLarge, got, err)
	}
}

func TestReadStdin(t *testing.T) {
	fp := NewFileProcessor(nil, 8)

	text, err := fp.ReadStdin(strings.NewReader("hello"))
	if err != nil || text != "hello" {
		t.Fatalf("ReadStdin() = %q, %v", text, err)
	}

	_, err = fp.ReadStdin(bytes.NewReader(bytes.Repeat([]byte("x"), 9)))
	if got := errorCode(err); got != errors.ErrCodeFileTooLarge {
		t.Errorf("Expected %s, got %s", errors.ErrCodeFileTooLarge, got)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "docs", "b.md"), "b")
	writeFile(t, filepath.Join(dir, "docs", "deep", "c.md"), "c")
	writeFile(t, filepath.Join(dir, "docs", "skip.pdf"), "x")

	fp := NewFileProcessor(nil, 0)

	paths, err := fp.ExpandInputs(
		[]string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "*.txt")},
		filepath.Join(dir, "docs", "**", "*.md"),
	)
	if err != nil {
		t.Fatalf("ExpandInputs() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "docs", "b.md"),
		filepath.Join(dir, "docs", "deep", "c.md"),
	}
	if strings.Join(paths, "|") != strings.Join(want, "|") {
		t.Errorf("ExpandInputs() = %v, want %v", paths, want)
	}

	if _, err := fp.ExpandInputs(nil, "docs/[a-"); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}

func TestReadDocumentsStripsMarkdown(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "resume.md")
	txt := filepath.Join(dir, "resume.txt")
	writeFile(t, md, "# Summary\n\nBuilt **fast** services.\n")
	writeFile(t, txt, "# Summary\n\nBuilt **fast** services.\n")

	fp := NewFileProcessor(nil, 0)

	docs, err := fp.ReadDocuments([]string{md, txt}, false)
	if err != nil {
		t.Fatalf("ReadDocuments() error: %v", err)
	}
	if strings.Contains(docs[0].Text, "**") || strings.Contains(docs[0].Text, "#") {
		t.Errorf("Markdown file was not stripped: %q", docs[0].Text)
	}
	if !strings.Contains(docs[1].Text, "**fast**") {
		t.Errorf("Text file should be untouched: %q", docs[1].Text)
	}

	docs, err = fp.ReadDocuments([]string{txt}, true)
	if err != nil {
		t.Fatalf("ReadDocuments() error: %v", err)
	}
	if strings.Contains(docs[0].Text, "**") {
		t.Errorf("--markdown should strip every file: %q", docs[0].Text)
	}
}

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.txt")
	if err := os.WriteFile(small, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		file    string
		maxSize int64
		wantErr string
	}{
		{"ok", small, 1024, ""},
		{"no limit", small, 0, ""},
		{"empty name", "", 0, "cannot be empty"},
		{"missing", filepath.Join(dir, "missing.txt"), 0, "does not exist"},
		{"directory", dir, 0, "is a directory"},
		{"too large", small, 3, "larger than the 3 B limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.file, tt.maxSize)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateOutputFileCreatesDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	if err := ValidateOutputFile(out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(out)); err != nil || !info.IsDir() {
		t.Errorf("Expected output directory to be created")
	}
	if err := ValidateOutputFile(filepath.Dir(out)); err == nil {
		t.Error("Expected error when output path is a directory")
	}
	if err := ValidateOutputFile(""); err != nil {
		t.Errorf("stdout should be valid, got %v", err)
	}
}

func TestFileKinds(t *testing.T) {
	if !IsTextFile("resume.TXT") || !IsTextFile("notes.md") {
		t.Error("Expected .txt and .md to be text files")
	}
	if IsTextFile("resume.pdf") {
		t.Error("PDF should not be a text file")
	}
	if !IsMarkdownFile("README.Markdown") || IsMarkdownFile("resume.txt") {
		t.Error("Markdown detection is wrong")
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		512:             "512 B",
		1024:            "1.0 KB",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for size, want := range cases {
		if got := FormatFileSize(size); got != want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", size, got, want)
		}
	}
}

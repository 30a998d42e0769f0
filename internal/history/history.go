// Package history keeps a bounded, caller-owned list of past analyses.
//
// A History value is never mutated after creation. Append returns a new
// History, so callers can share one freely across goroutines.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// DefaultLimit is used when a History is created with a non-positive limit.
const DefaultLimit = 50

const previewRunes = 80

// Entry records one analysis.
type Entry struct {
	ID        string             `json:"id" yaml:"id"`
	CreatedAt time.Time          `json:"created_at" yaml:"created_at"`
	Source    string             `json:"source" yaml:"source"`
	Preview   string             `json:"preview" yaml:"preview"`
	Analysis  types.TextAnalysis `json:"analysis" yaml:"analysis"`
}

// NewEntry builds an Entry for text with a fresh ID. The timestamp is taken
// from the analysis so entries line up with the report they describe.
func NewEntry(source, text string, analysis types.TextAnalysis) Entry {
	return Entry{
		ID:        uuid.NewString(),
		CreatedAt: analysis.GeneratedAt,
		Source:    source,
		Preview:   Preview(text),
		Analysis:  analysis,
	}
}

// Preview collapses whitespace in text and cuts it to a short prefix.
func Preview(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(collapsed) <= previewRunes {
		return collapsed
	}
	runes := []rune(collapsed)
	return string(runes[:previewRunes]) + "..."
}

// History is an ordered list of entries, oldest first, capped at Limit.
type History struct {
	entries []Entry
	limit   int
}

// New returns an empty History holding at most limit entries.
func New(limit int) History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return History{limit: limit}
}

// FromEntries builds a History from existing entries, keeping the newest
// limit of them.
func FromEntries(entries []Entry, limit int) History {
	h := New(limit)
	start := max(len(entries)-h.limit, 0)
	h.entries = slices.Clone(entries[start:])
	return h
}

// Append returns a new History with entry added. The oldest entries are
// dropped once the limit is reached. The receiver is not modified.
func (h History) Append(entry Entry) History {
	limit := h.limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := max(len(h.entries)+1-limit, 0)
	next := make([]Entry, 0, len(h.entries)-start+1)
	next = append(next, h.entries[start:]...)
	next = append(next, entry)
	return History{entries: next, limit: limit}
}

// Entries returns a copy of the entries, oldest first.
func (h History) Entries() []Entry {
	if h.entries == nil {
		return []Entry{}
	}
	return slices.Clone(h.entries)
}

func (h History) Len() int {
	return len(h.entries)
}

func (h History) Limit() int {
	return h.limit
}

// Latest returns the newest entry.
func (h History) Latest() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Load reads a JSON history file. A missing file yields an empty History.
func Load(path string, limit int) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(limit), nil
		}
		return History{}, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read history file: %s", path), err)
	}

	var entries []Entry
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return History{}, errors.NewValidationError(errors.ErrCodeInvalidFormat,
				fmt.Sprintf("History file is not a JSON list of entries: %s", path), err)
		}
	}
	return FromEntries(entries, limit), nil
}

// Save writes the history as indented JSON, replacing path atomically.
func Save(path string, h History) error {
	data, err := json.MarshalIndent(h.Entries(), "", "  ")
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeEncodeFailed, "Failed to encode history", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotWritable,
			fmt.Sprintf("Cannot write history file in %s", dir), err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return errors.NewIOError(errors.ErrCodeFileNotWritable, "Failed to write history file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotWritable, "Failed to write history file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotWritable,
			fmt.Sprintf("Failed to replace history file: %s", path), err)
	}
	return nil
}

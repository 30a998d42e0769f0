package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

func testEntry(source string) Entry {
	analysis := types.TextAnalysis{
		Basic:       types.BasicMetrics{WordCount: 2},
		Sentiment:   types.SentimentResult{Label: types.SentimentNeutral, Score: 50},
		Keywords:    []types.KeywordEntry{},
		Readability: types.ReadabilityResult{Level: types.ReadabilityUnknown},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	return NewEntry(source, "hello world", analysis)
}

func TestNewEntry(t *testing.T) {
	e := testEntry("resume.txt")

	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, "resume.txt", e.Source)
	assert.Equal(t, "hello world", e.Preview)
	assert.Equal(t, e.Analysis.GeneratedAt, e.CreatedAt)
	assert.NotEqual(t, e.ID, testEntry("resume.txt").ID)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b c", Preview("  a\n\tb   c "))

	long := strings.Repeat("é", 100)
	got := Preview(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("é", previewRunes)+"...", got)
}

func TestAppendDoesNotModifyReceiver(t *testing.T) {
	empty := New(3)
	one := empty.Append(testEntry("a"))
	two := one.Append(testEntry("b"))

	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, one.Len())
	assert.Equal(t, 2, two.Len())

	// Branching from the same parent must not clobber siblings.
	left := one.Append(testEntry("left"))
	right := one.Append(testEntry("right"))
	assert.Equal(t, "left", left.Entries()[1].Source)
	assert.Equal(t, "right", right.Entries()[1].Source)
}

func TestAppendEvictsOldest(t *testing.T) {
	h := New(2)
	for _, source := range []string{"a", "b", "c"} {
		h = h.Append(testEntry(source))
	}

	require.Equal(t, 2, h.Len())
	entries := h.Entries()
	assert.Equal(t, "b", entries[0].Source)
	assert.Equal(t, "c", entries[1].Source)

	latest, ok := h.Latest()
	assert.True(t, ok)
	assert.Equal(t, "c", latest.Source)
}

func TestZeroValueHistory(t *testing.T) {
	var h History
	_, ok := h.Latest()
	assert.False(t, ok)
	assert.NotNil(t, h.Entries())

	h = h.Append(testEntry("a"))
	assert.Equal(t, DefaultLimit, h.Limit())
}

func TestFromEntriesKeepsNewest(t *testing.T) {
	entries := []Entry{testEntry("a"), testEntry("b"), testEntry("c")}
	h := FromEntries(entries, 2)
	assert.Equal(t, "b", h.Entries()[0].Source)

	entries[2].Source = "mutated"
	assert.Equal(t, "c", h.Entries()[1].Source)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	h, err := Load(path, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())

	h = h.Append(testEntry("first")).Append(testEntry("second"))
	require.NoError(t, Save(path, h))

	loaded, err := Load(path, 10)
	require.NoError(t, err)
	assert.Equal(t, h.Entries(), loaded.Entries())

	truncated, err := Load(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "second", truncated.Entries()[0].Source)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0o600))

	_, err := Load(path, 10)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.TypeOf(err))
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	h, err := Load(path, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

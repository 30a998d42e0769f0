package textmetrics

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"resumelens/internal/errors"
	"resumelens/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLexicon(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()

	assert.True(t, lex.Contains(CategoryPositive, "great"))
	assert.True(t, lex.Contains(CategoryNegative, "terrible"))
	assert.True(t, lex.Contains(CategoryStopWords, "the"))
	assert.False(t, lex.Contains(CategoryPositive, "terrible"))
	assert.Equal(t, []Category{CategoryNegative, CategoryPositive, CategoryStopWords}, lex.Categories())
}

func TestLexiconNilSafe(t *testing.T) {
	var lex *Lexicon
	assert.False(t, lex.Contains(CategoryPositive, "great"))
	assert.Nil(t, lex.Words(CategoryPositive))
	assert.Zero(t, lex.Size(CategoryPositive))
	assert.Empty(t, lex.Stats())
}

func TestLexiconWith(t *testing.T) {
	base := DefaultLexicon()
	custom := base.With(map[Category][]string{
		CategoryPositive: {" Stellar ", "", "ROBUST"},
	})

	assert.Equal(t, []string{"robust", "stellar"}, custom.Words(CategoryPositive))
	assert.True(t, custom.Contains(CategoryNegative, "terrible"))
	assert.True(t, base.Contains(CategoryPositive, "great"), "base lexicon must be unchanged")
	assert.False(t, custom.Contains(CategoryPositive, "great"))
}

func TestParseLexicon(t *testing.T) {
	categories, err := ParseLexicon([]byte("Positive: [stellar]\nskills: [golang, rust]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"stellar"}, categories[CategoryPositive])
	assert.Equal(t, []string{"golang", "rust"}, categories["skills"])

	categories, err = ParseLexicon([]byte(`{"negative": ["meh"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"meh"}, categories[CategoryNegative])

	_, err = ParseLexicon([]byte("positive: [unclosed"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.TypeOf(err))
}

func TestLoadLexiconFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("overrides only listed categories", func(t *testing.T) {
		path := filepath.Join(dir, "lexicon.yaml")
		writeLexicon(t, path, "positive: [stellar]\n")

		lex, err := LoadLexiconFile(path)
		require.NoError(t, err)
		assert.True(t, lex.Contains(CategoryPositive, "stellar"))
		assert.False(t, lex.Contains(CategoryPositive, "great"))
		assert.Equal(t, DefaultLexicon().Words(CategoryNegative), lex.Words(CategoryNegative))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLexiconFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeIO, errors.TypeOf(err))
	})
}

func TestLexiconStoreDefaults(t *testing.T) {
	store, err := NewLexiconStore("", 0, nil)
	require.NoError(t, err)

	assert.True(t, store.Current().Contains(CategoryPositive, "great"))
	require.NoError(t, store.Start())
	assert.False(t, store.IsRunning())
	assert.NoError(t, store.Reload())
	assert.NoError(t, store.Stop())
}

func TestLexiconStoreReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	writeLexicon(t, path, "positive: [stellar]\n")

	store, err := NewLexiconStore(path, 0, errors.NewNopLogger())
	require.NoError(t, err)
	before := store.Current()

	writeLexicon(t, path, "positive: [unclosed")
	require.Error(t, store.Reload())
	assert.Same(t, before, store.Current())
	assert.Zero(t, store.Reloads())

	writeLexicon(t, path, "positive: [superb]\n")
	require.NoError(t, store.Reload())
	assert.True(t, store.Current().Contains(CategoryPositive, "superb"))
	assert.Equal(t, int64(1), store.Reloads())
}

func TestLexiconStoreWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	writeLexicon(t, path, "positive: [stellar]\n")

	store, err := NewLexiconStore(path, 20*time.Millisecond, errors.NewNopLogger())
	require.NoError(t, err)

	var mu sync.Mutex
	var reloadErrs []error
	store.OnReload(func(_ *Lexicon, err error) {
		mu.Lock()
		defer mu.Unlock()
		reloadErrs = append(reloadErrs, err)
	})

	require.NoError(t, store.Start())
	t.Cleanup(func() { _ = store.Stop() })
	assert.True(t, store.IsRunning())
	assert.Error(t, store.Start(), "second start must fail")

	writeLexicon(t, path, "positive: [magnificent]\n")

	require.Eventually(t, func() bool {
		return store.Current().Contains(CategoryPositive, "magnificent")
	}, 5*time.Second, 20*time.Millisecond)

	engine := store.Engine()
	got := engine.Sentiment("magnificent work")
	assert.Equal(t, types.SentimentPositive, got.Label)

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, reloadErrs)
	assert.NoError(t, reloadErrs[len(reloadErrs)-1])
}

func TestNewLexiconStoreInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	writeLexicon(t, path, "positive: [unclosed")

	_, err := NewLexiconStore(path, 0, nil)
	require.Error(t, err)
}

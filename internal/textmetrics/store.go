package textmetrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"resumelens/internal/errors"
)

const defaultReloadDebounce = time.Second

// LexiconStore holds the active Lexicon and can hot-reload it from a file.
// Readers always see a complete Lexicon; a failed reload keeps the old one.
type LexiconStore struct {
	current atomic.Pointer[Lexicon]
	reloads atomic.Int64

	path     string
	debounce time.Duration
	logger   *errors.Logger
	onReload func(*Lexicon, error)

	mu            sync.Mutex
	fsWatcher     *fsnotify.Watcher
	debounceTimer *time.Timer
	stopChan      chan struct{}
	reloadChan    chan struct{}
	running       bool
}

// NewLexiconStore loads path, or the defaults when path is empty.
func NewLexiconStore(path string, debounce time.Duration, logger *errors.Logger) (*LexiconStore, error) {
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	s := &LexiconStore{
		path:     path,
		debounce: debounce,
		logger:   logger,
	}

	if path == "" {
		s.current.Store(DefaultLexicon())
		return s, nil
	}

	lex, err := LoadLexiconFile(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(lex)
	return s, nil
}

// Current returns the active Lexicon.
func (s *LexiconStore) Current() *Lexicon {
	return s.current.Load()
}

// Engine returns an Engine bound to the active Lexicon.
func (s *LexiconStore) Engine(opts ...Option) *Engine {
	return NewEngine(s.Current(), opts...)
}

// Path returns the watched file, empty for the built-in lexicon.
func (s *LexiconStore) Path() string {
	return s.path
}

// Reloads returns how many reloads have succeeded.
func (s *LexiconStore) Reloads() int64 {
	return s.reloads.Load()
}

// OnReload registers a callback run after every reload attempt. Must be
// called before Start.
func (s *LexiconStore) OnReload(fn func(*Lexicon, error)) {
	s.onReload = fn
}

// Reload re-reads the lexicon file. On error the active Lexicon is unchanged.
func (s *LexiconStore) Reload() error {
	if s.path == "" {
		return nil
	}

	lex, err := LoadLexiconFile(s.path)
	if err != nil {
		s.logger.LogError(err, "Lexicon reload failed, keeping previous lexicon", "file", s.path)
	} else {
		s.current.Store(lex)
		s.reloads.Add(1)
		s.logger.Info("Lexicon reloaded", "file", s.path, "categories", lex.Stats())
	}

	if s.onReload != nil {
		s.onReload(lex, err)
	}
	return err
}

// Start watches the lexicon file. It is a no-op for the built-in lexicon.
func (s *LexiconStore) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if s.running {
		return fmt.Errorf("lexicon watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Editors and config managers replace files by rename, so the
	// directory is the reliable watch target.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	s.fsWatcher = watcher
	s.stopChan = make(chan struct{})
	s.reloadChan = make(chan struct{}, 1)
	s.running = true
	go s.watchLoop(watcher, s.stopChan, s.reloadChan)

	s.logger.Info("Lexicon watcher started", "file", s.path, "debounce", s.debounce)
	return nil
}

// Stop ends watching. Safe to call when not running.
func (s *LexiconStore) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	close(s.stopChan)
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.running = false

	if err := s.fsWatcher.Close(); err != nil {
		s.logger.LogError(err, "Failed to close lexicon watcher")
		return err
	}
	s.logger.Info("Lexicon watcher stopped")
	return nil
}

// IsRunning reports whether the file watcher is active.
func (s *LexiconStore) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *LexiconStore) watchLoop(watcher *fsnotify.Watcher, stop <-chan struct{}, reload <-chan struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if s.isLexiconEvent(event) {
				s.scheduleReload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.LogError(err, "Lexicon watcher error")

		case <-reload:
			if _, err := os.Stat(s.path); err != nil {
				s.logger.Warn("Lexicon file missing, keeping previous lexicon", "file", s.path)
				continue
			}
			_ = s.Reload()

		case <-stop:
			return
		}
	}
}

func (s *LexiconStore) isLexiconEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (s *LexiconStore) scheduleReload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	reload := s.reloadChan
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
}

// Package jsonstore provides a JSON file-based implementation of
// domain.ViewStateStore.
package jsonstore

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/runoshun/daisen/internal/domain"
)

// DefaultLimit is the number of traces a Store remembers.
const DefaultLimit = 50

// FileName is the name of the store file inside the state directory.
const FileName = "views.json"

// storeVersion is written to new files and bumped on format changes.
const storeVersion = 1

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Views map[string]*domain.ViewState `json:"views"`
	Meta  meta                         `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Version int `json:"version"`
}

// Store implements domain.ViewStateStore using a JSON file.
// Fields are ordered to minimize memory padding.
type Store struct {
	path     string
	lockPath string
	limit    int
}

var _ domain.ViewStateStore = (*Store)(nil)

// New creates a new Store for the given file path keeping at most limit
// traces. A non-positive limit uses DefaultLimit.
// The file does not need to exist; it will be created on first write.
func New(path string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		path:     path,
		lockPath: path + ".lock",
		limit:    limit,
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the state saved for key.
func (s *Store) Load(key string) (domain.ViewState, bool, error) {
	var (
		state domain.ViewState
		found bool
	)
	err := s.withLock(func(data *storeData) error {
		if v, ok := data.Views[key]; ok && v != nil {
			state = *v
			found = true
		}
		return nil
	})
	return state, found, err
}

// Save records the state for key and forgets the least recently saved
// traces beyond the limit.
func (s *Store) Save(key string, state domain.ViewState) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Views[key] = &state
		s.prune(data)
		return nil
	})
}

// Keys returns the remembered trace keys, most recently saved first.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.withLock(func(data *storeData) error {
		keys = sortedKeys(data)
		return nil
	})
	return keys, err
}

func (s *Store) prune(data *storeData) {
	keys := sortedKeys(data)
	if len(keys) <= s.limit {
		return
	}
	for _, k := range keys[s.limit:] {
		delete(data.Views, k)
	}
}

// sortedKeys returns the keys by SavedAt, newest first. Ties sort by key.
func sortedKeys(data *storeData) []string {
	keys := make([]string, 0, len(data.Views))
	for k := range data.Views {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := data.Views[b].SavedAt.Compare(data.Views[a].SavedAt); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return keys
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the store file. A missing file is an empty store.
func (s *Store) read() (*storeData, error) {
	data := storeData{Meta: meta{Version: storeVersion}}

	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			data.Views = make(map[string]*domain.ViewState)
			return &data, nil
		}
		return nil, fmt.Errorf("read view store: %w", err)
	}

	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse view store %s: %w", s.path, err)
	}

	// Ensure maps are initialized
	if data.Views == nil {
		data.Views = make(map[string]*domain.ViewState)
	}
	for k, v := range data.Views {
		if v == nil {
			delete(data.Views, k)
		}
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal view store: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Package history implements the ingredient price history store.
package history

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.PriceHistory using a flat JSON file.
// The file is read on first use.
type Store struct {
	path string

	mu      sync.Mutex
	loaded  bool
	changes []domain.PriceChange
}

// NewStore creates a PriceHistory backed by a JSON file inside dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(filepath.Clean(dir), domain.HistoryFileName)}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryReadFailed.Error()), "path", s.path)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.changes); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrHistoryUnmarshalFailed.Error()), "path", s.path)
		}
	}
	s.loaded = true
	return nil
}

func (s *Store) save(changes []domain.PriceChange) error {
	data, err := json.MarshalIndent(changes, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryMarshalFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryCreateFailed.Error())
	}

	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// Append stores the changes, keeping the history ordered by time.
// Nothing is kept in memory when the file cannot be written.
func (s *Store) Append(changes ...domain.PriceChange) error {
	if len(changes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	next := slices.Concat(s.changes, changes)
	slices.SortStableFunc(next, func(a, b domain.PriceChange) int {
		return cmp.Compare(a.ChangedAt.UnixNano(), b.ChangedAt.UnixNano())
	})
	if err := s.save(next); err != nil {
		return err
	}
	s.changes = next
	return nil
}

// SetRoot moves the store under the state directory of root.
// Records read from the previous location are dropped.
func (s *Store) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = filepath.Join(filepath.Clean(root), domain.DefaultHistoryPath(), domain.HistoryFileName)
	s.loaded = false
	s.changes = nil
}

// Since returns every change recorded at or after t, oldest first.
func (s *Store) Since(t time.Time) ([]domain.PriceChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	i, _ := slices.BinarySearchFunc(s.changes, t, func(c domain.PriceChange, t time.Time) int {
		return cmp.Compare(c.ChangedAt.UnixNano(), t.UnixNano())
	})
	return slices.Clone(s.changes[i:]), nil
}

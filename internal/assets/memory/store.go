// Package memory keeps site files in memory for tests and development.
package memory

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sync"
)

// Store maps slash separated paths to file contents.
type Store struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewStore creates a Store seeded with files. The map is copied.
func NewStore(files map[string]string) *Store {
	s := &Store{files: make(map[string][]byte, len(files))}
	for p, content := range files {
		s.files[path.Clean(p)] = []byte(content)
	}
	return s
}

// Exists reports whether p has been stored.
func (s *Store) Exists(_ context.Context, p string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[path.Clean(p)]
	return ok
}

// Read returns a copy of the contents stored at p.
func (s *Store) Read(_ context.Context, p string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", p, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data at p.
func (s *Store) Write(_ context.Context, p string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path.Clean(p)] = append([]byte(nil), data...)
	return nil
}

// Package local implements an asset store over the site's directory on disk.
package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config captures the parameters for the filesystem asset store.
type Config struct {
	// Root is the site directory that layout and public paths are relative to.
	Root string `mapstructure:"root" yaml:"root"`
}

// Store reads and writes site files under a root directory.
type Store struct {
	root string
}

// New creates a Store rooted at cfg.Root. The directory must already exist.
func New(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Root) == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root directory path is not a directory")
	}
	return &Store{root: root}, nil
}

// Root returns the absolute site directory.
func (s *Store) Root() string {
	return s.root
}

// Exists reports whether a regular file exists at p.
func (s *Store) Exists(_ context.Context, p string) bool {
	full, err := s.resolve(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

// Read returns the contents of the file at p.
func (s *Store) Read(_ context.Context, p string) ([]byte, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is confined to the site root by resolve.
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Write stores data at p, creating parent directories as needed.
func (s *Store) Write(_ context.Context, p string, data []byte) error {
	full, err := s.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return fmt.Errorf("failed to create parent directories: %w", err)
	}
	if err := os.WriteFile(full, data, 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// resolve maps a slash separated relative path into the root, rejecting paths
// that escape it.
func (s *Store) resolve(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", errors.New("path is required")
	}
	full := filepath.Join(s.root, filepath.FromSlash(p))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected")
	}
	return full, nil
}

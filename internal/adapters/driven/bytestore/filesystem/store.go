// Package filesystem provides a byte store backed by a directory on
// local disk. Keys map to slash-separated relative paths under the
// root.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ferrous-labs/deckdex-cli/internal/core/domain"
	"github.com/ferrous-labs/deckdex-cli/internal/core/ports/driven"
	"github.com/ferrous-labs/deckdex-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ByteStore = (*Store)(nil)

// Store keeps deck files under a root directory.
type Store struct {
	root string
}

// NewStore creates the root directory if needed and returns a store
// over it. If root is empty, defaults to ~/.deckdex/library.
func NewStore(root string) (*Store, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		root = filepath.Join(home, ".deckdex", "library")
	}

	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the backing directory.
func (s *Store) Root() string {
	return s.root
}

// Put stores data under key, creating parent directories as needed.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating parent directory for %q: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// List walks the root and returns keys matching the extension filter.
func (s *Store) List(_ context.Context, extensions ...string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !matchesExtension(d.Name(), extensions) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}
	return keys, nil
}

// Get returns the bytes stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return data, nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Watch emits the key of every file created or modified under the
// root whose name matches the extension filter. The channel closes
// when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, extensions ...string) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.root, err)
	}

	keys := make(chan string)
	go func() {
		defer close(keys)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !matchesExtension(filepath.Base(event.Name), extensions) {
					continue
				}
				rel, err := filepath.Rel(s.root, event.Name)
				if err != nil {
					continue
				}
				select {
				case keys <- filepath.ToSlash(rel):
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("library watch error: %v", err)
			}
		}
	}()
	return keys, nil
}

// resolve maps a key to an absolute path inside the root, rejecting
// keys that would escape it.
func (s *Store) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: key %q escapes the library root", domain.ErrInvalidInput, key)
	}
	return filepath.Join(s.root, clean), nil
}

// matchesExtension checks a file name against the lower-cased
// extension filter. No extensions means match everything.
func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

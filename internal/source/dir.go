package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DirSource resolves resources against an ordered list of root directories.
// The first root containing the relative path wins. Roots added later are
// searched after the roots present at construction.
type DirSource struct {
	name string

	mu    sync.RWMutex
	roots []string
}

// NewDirSource builds a directory-backed source. Roots are cleaned but not
// required to exist yet; a missing root simply never resolves anything.
func NewDirSource(name string, roots ...string) *DirSource {
	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		trimmed := strings.TrimSpace(root)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(trimmed))
	}
	return &DirSource{name: name, roots: cleaned}
}

// Name implements Source.
func (s *DirSource) Name() string {
	return s.name
}

// Resolve implements Source. Resource names use forward slashes regardless of
// platform; they are joined beneath each root in order.
func (s *DirSource) Resolve(name string) (io.ReadCloser, error) {
	rel, err := cleanResourceName(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	roots := s.roots
	s.mu.RUnlock()
	for _, root := range roots {
		path := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("source %s: open %s: %w", s.name, path, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("source %s: %s: %w", s.name, rel, ErrNotFound)
}

// Locations implements Enumerator.
func (s *DirSource) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.roots...)
}

// AddLocation implements Extender. Duplicate roots are ignored so repeated
// propagation stays idempotent.
func (s *DirSource) AddLocation(location string) error {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return fmt.Errorf("source %s: location is required", s.name)
	}
	cleaned := filepath.Clean(trimmed)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, root := range s.roots {
		if root == cleaned {
			return nil
		}
	}
	s.roots = append(s.roots, cleaned)
	return nil
}

// cleanResourceName validates a slash-separated resource path. Absolute paths
// and parent traversal are rejected so a resource name can never escape a
// source's roots.
func cleanResourceName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("source: resource name is required")
	}
	if strings.HasPrefix(trimmed, "/") {
		return "", fmt.Errorf("source: resource name %s must be relative", trimmed)
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(trimmed)))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("source: resource name %s escapes the search roots", trimmed)
	}
	return cleaned, nil
}

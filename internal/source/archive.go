package source

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// ArchiveSource resolves resources out of an ordered list of zip archives.
// Archives are opened lazily on first lookup and kept open for the life of
// the source; a location that fails to open is skipped on every lookup and
// reported once through Resolve's error when nothing else matches.
type ArchiveSource struct {
	name string

	mu        sync.RWMutex
	locations []string
	readers   map[string]*zip.ReadCloser
}

// NewArchiveSource builds an archive-backed source over zero or more zip
// file paths.
func NewArchiveSource(name string, locations ...string) *ArchiveSource {
	cleaned := make([]string, 0, len(locations))
	for _, loc := range locations {
		trimmed := strings.TrimSpace(loc)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(trimmed))
	}
	return &ArchiveSource{
		name:      name,
		locations: cleaned,
		readers:   map[string]*zip.ReadCloser{},
	}
}

// Name implements Source.
func (s *ArchiveSource) Name() string {
	return s.name
}

// Resolve implements Source. Entry names inside an archive always use forward
// slashes, matching the resource naming convention directly.
func (s *ArchiveSource) Resolve(name string) (io.ReadCloser, error) {
	rel, err := cleanResourceName(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	locations := s.locations
	s.mu.RUnlock()
	for _, loc := range locations {
		reader, err := s.reader(loc)
		if err != nil {
			continue
		}
		f, err := reader.Open(rel)
		if err != nil {
			continue
		}
		return f, nil
	}
	return nil, fmt.Errorf("source %s: %s: %w", s.name, rel, ErrNotFound)
}

// Locations implements Enumerator.
func (s *ArchiveSource) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.locations...)
}

// AddLocation implements Extender. The archive is not opened eagerly; a bad
// path surfaces as a lookup miss, matching the constructor's behavior.
func (s *ArchiveSource) AddLocation(location string) error {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return fmt.Errorf("source %s: location is required", s.name)
	}
	cleaned := filepath.Clean(trimmed)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, loc := range s.locations {
		if loc == cleaned {
			return nil
		}
	}
	s.locations = append(s.locations, cleaned)
	return nil
}

// Close releases every archive handle opened so far.
func (s *ArchiveSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for loc, rc := range s.readers {
		if err := rc.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("source %s: close %s: %w", s.name, loc, err)
		}
		delete(s.readers, loc)
	}
	return firstErr
}

func (s *ArchiveSource) reader(location string) (*zip.ReadCloser, error) {
	s.mu.RLock()
	rc, ok := s.readers[location]
	s.mu.RUnlock()
	if ok {
		return rc, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rc, ok := s.readers[location]; ok {
		return rc, nil
	}
	rc, err := zip.OpenReader(location)
	if err != nil {
		return nil, fmt.Errorf("source %s: open archive %s: %w", s.name, location, err)
	}
	s.readers[location] = rc
	return rc, nil
}

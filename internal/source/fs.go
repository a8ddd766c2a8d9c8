package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// FSSource adapts an fs.FS (typically an embedded filesystem) into a Source.
// It deliberately implements neither Enumerator nor Extender: the system
// loader's search set is fixed at build time.
type FSSource struct {
	name string
	fsys fs.FS
}

// NewFSSource wraps fsys under the given name.
func NewFSSource(name string, fsys fs.FS) *FSSource {
	return &FSSource{name: name, fsys: fsys}
}

// Name implements Source.
func (s *FSSource) Name() string {
	return s.name
}

// Resolve implements Source.
func (s *FSSource) Resolve(name string) (io.ReadCloser, error) {
	rel, err := cleanResourceName(name)
	if err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source %s: %s: %w", s.name, rel, ErrNotFound)
		}
		return nil, fmt.Errorf("source %s: open %s: %w", s.name, rel, err)
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("source %s: %s: %w", s.name, rel, ErrNotFound)
	}
	return f, nil
}

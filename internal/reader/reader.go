// Package reader provides the structured, fully-buffered view over a
// resolved module's bytes that the launch environment hands to downstream
// consumers (the definition pipeline, transformers).
package reader

import (
	"bytes"
	"io"
)

// ModuleReader holds the complete bytes of one resolved module resource.
// A reader over zero bytes is valid: an empty module file is present, just
// empty, which is a different condition from the module being absent.
type ModuleReader struct {
	qualifiedName string
	path          string
	data          []byte
}

// New builds a reader. The byte slice is retained as-is; callers hand over
// ownership.
func New(qualifiedName, path string, data []byte) *ModuleReader {
	return &ModuleReader{qualifiedName: qualifiedName, path: path, data: data}
}

// QualifiedName returns the dotted module name the reader was resolved for.
func (r *ModuleReader) QualifiedName() string {
	return r.qualifiedName
}

// Path returns the resource path the bytes were read from.
func (r *ModuleReader) Path() string {
	return r.path
}

// Bytes returns the buffered contents.
func (r *ModuleReader) Bytes() []byte {
	return r.data
}

// Len returns the buffered length.
func (r *ModuleReader) Len() int {
	return len(r.data)
}

// Open returns a fresh reader positioned at the start of the contents.
func (r *ModuleReader) Open() io.Reader {
	return bytes.NewReader(r.data)
}

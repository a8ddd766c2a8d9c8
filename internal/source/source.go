// Package source defines the loader-source capability used by the launch
// environment. A source resolves a slash-separated resource path to a byte
// stream; a source may additionally enumerate the locations it searches and
// may offer a sanctioned way to widen that set after construction.
package source

import (
	"errors"
	"io"
)

// ErrNotFound is returned by Resolve when a source does not know the
// requested resource. Callers match it with errors.Is.
var ErrNotFound = errors.New("source: resource not found")

// Source resolves named resources to byte streams.
type Source interface {
	// Name identifies the source in logs and the inspector.
	Name() string

	// Resolve opens a stream for the resource, or returns an error wrapping
	// ErrNotFound when the source does not provide it. The caller owns the
	// returned stream and must close it.
	Resolve(name string) (io.ReadCloser, error)
}

// Enumerator is implemented by sources that can report the locations they
// currently search. The early-extension source must implement it so its
// locations can be propagated into the runtime loader at capture time.
type Enumerator interface {
	Locations() []string
}

// Extender is the sanctioned extension API: a source implementing it accepts
// additional search locations after construction.
type Extender interface {
	AddLocation(location string) error
}

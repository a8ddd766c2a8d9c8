package source

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestFSSourceResolve(t *testing.T) {
	fsys := fstest.MapFS{
		"community/review.go": {Data: []byte("embedded")},
	}
	src := NewFSSource("system", fsys)

	if got := readAll(t, src, "community/review.go"); got != "embedded" {
		t.Fatalf("unexpected content: %q", got)
	}
	if _, err := src.Resolve("missing.go"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSSourceDirectoryIsNotAResource(t *testing.T) {
	fsys := fstest.MapFS{
		"community/review.go": {Data: []byte("embedded")},
	}
	src := NewFSSource("system", fsys)
	if _, err := src.Resolve("community"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected directory lookup to miss, got %v", err)
	}
}

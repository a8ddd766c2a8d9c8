package source

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeResource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func readAll(t *testing.T, src Source, name string) string {
	t.Helper()
	rc, err := src.Resolve(name)
	if err != nil {
		t.Fatalf("resolve %s: %v", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestDirSourceResolvesFirstRoot(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeResource(t, first, "community/review.go", "first")
	writeResource(t, second, "community/review.go", "second")

	src := NewDirSource("test", first, second)
	if got := readAll(t, src, "community/review.go"); got != "first" {
		t.Fatalf("expected first root to win, got %q", got)
	}
}

func TestDirSourceNotFound(t *testing.T) {
	src := NewDirSource("test", t.TempDir())
	_, err := src.Resolve("missing.go")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDirSourceAddLocation(t *testing.T) {
	extra := t.TempDir()
	writeResource(t, extra, "late.go", "late")

	src := NewDirSource("test", t.TempDir())
	if _, err := src.Resolve("late.go"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected miss before AddLocation, got %v", err)
	}
	if err := src.AddLocation(extra); err != nil {
		t.Fatalf("add location: %v", err)
	}
	if got := readAll(t, src, "late.go"); got != "late" {
		t.Fatalf("unexpected content after AddLocation: %q", got)
	}

	// Repeated propagation of the same location must stay idempotent.
	if err := src.AddLocation(extra); err != nil {
		t.Fatalf("re-add location: %v", err)
	}
	if got := len(src.Locations()); got != 2 {
		t.Fatalf("expected 2 locations, got %d", got)
	}
}

func TestDirSourceRejectsEscapingNames(t *testing.T) {
	src := NewDirSource("test", t.TempDir())
	for _, name := range []string{"", "/etc/passwd", "../outside.go", "a/../../outside.go"} {
		if _, err := src.Resolve(name); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestDirSourceLocationsIsACopy(t *testing.T) {
	root := t.TempDir()
	src := NewDirSource("test", root)
	locs := src.Locations()
	locs[0] = "mutated"
	if src.Locations()[0] != filepath.Clean(root) {
		t.Fatalf("Locations leaked internal state")
	}
}

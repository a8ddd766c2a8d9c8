package source

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return path
}

func TestArchiveSourceResolve(t *testing.T) {
	path := writeArchive(t, map[string]string{"community/review.go": "archived"})
	src := NewArchiveSource("test", path)
	defer src.Close()

	if got := readAll(t, src, "community/review.go"); got != "archived" {
		t.Fatalf("unexpected content: %q", got)
	}
	if _, err := src.Resolve("missing.go"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArchiveSourceOrder(t *testing.T) {
	first := writeArchive(t, map[string]string{"shared.go": "first"})
	second := writeArchive(t, map[string]string{"shared.go": "second"})
	src := NewArchiveSource("test", first, second)
	defer src.Close()

	if got := readAll(t, src, "shared.go"); got != "first" {
		t.Fatalf("expected first archive to win, got %q", got)
	}
}

func TestArchiveSourceAddLocation(t *testing.T) {
	src := NewArchiveSource("test")
	defer src.Close()
	late := writeArchive(t, map[string]string{"late.go": "late"})
	if err := src.AddLocation(late); err != nil {
		t.Fatalf("add location: %v", err)
	}
	if got := readAll(t, src, "late.go"); got != "late" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestArchiveSourceSkipsBadLocation(t *testing.T) {
	good := writeArchive(t, map[string]string{"ok.go": "ok"})
	src := NewArchiveSource("test", filepath.Join(t.TempDir(), "missing.zip"), good)
	defer src.Close()
	if got := readAll(t, src, "ok.go"); got != "ok" {
		t.Fatalf("unexpected content: %q", got)
	}
}

package reader

import (
	"io"
	"testing"
)

func TestModuleReader(t *testing.T) {
	r := New("community.review", "community/review.go", []byte("package main\n"))
	if r.QualifiedName() != "community.review" {
		t.Fatalf("unexpected name: %s", r.QualifiedName())
	}
	if r.Path() != "community/review.go" {
		t.Fatalf("unexpected path: %s", r.Path())
	}
	if r.Len() != len("package main\n") {
		t.Fatalf("unexpected length: %d", r.Len())
	}
	data, err := io.ReadAll(r.Open())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "package main\n" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestModuleReaderZeroBytes(t *testing.T) {
	r := New("community.empty", "community/empty.go", nil)
	if r.Len() != 0 {
		t.Fatalf("expected zero length")
	}
	data, err := io.ReadAll(r.Open())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected no bytes, got %q", data)
	}
}

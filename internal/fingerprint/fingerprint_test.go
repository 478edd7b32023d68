package fingerprint_test

import (
	"os"
	"path/filepath"
	"testing"

	"sift/internal/fingerprint"
)

func TestFromPathDeterministic(t *testing.T) {
	a := fingerprint.FromPath("/photos/2024/beach.jpg")
	b := fingerprint.FromPath("/photos/2024/beach.jpg")
	if a != b {
		t.Fatalf("same path produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", a)
	}
}

func TestFromPathDistinguishesPaths(t *testing.T) {
	a := fingerprint.FromPath("/photos/a.jpg")
	b := fingerprint.FromPath("/photos/b.jpg")
	if a == b {
		t.Fatalf("distinct paths collided: %s", a)
	}
}

func TestFromContent(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one.jpg")
	two := filepath.Join(dir, "two.jpg")
	if err := os.WriteFile(one, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(two, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	hashOne, err := fingerprint.FromContent(one)
	if err != nil {
		t.Fatalf("FromContent: %v", err)
	}
	hashTwo, err := fingerprint.FromContent(two)
	if err != nil {
		t.Fatalf("FromContent: %v", err)
	}
	if hashOne != hashTwo {
		t.Fatal("identical bytes under different paths should share a content hash")
	}

	if _, err := fingerprint.FromContent(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

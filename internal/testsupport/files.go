package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WritePhotoFile creates a fake image file at path with the given size and
// modification time. The content is a repeating pattern, not a real image, so
// capture time resolution falls back to the modification time.
func WritePhotoFile(t testing.TB, path string, size int64, modTime time.Time) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// WriteClassifierScript writes a shell script that prints the provided JSON
// predictions on stdout and returns its path.
func WriteClassifierScript(t testing.TB, dir, output string) string {
	t.Helper()

	path := filepath.Join(dir, "classifier.sh")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", output)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write classifier script: %v", err)
	}
	return path
}

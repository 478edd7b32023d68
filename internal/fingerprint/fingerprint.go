package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"io"
	"os"
)

// FromPath derives the dedup fingerprint for a photo from its stable content
// locator. It deliberately hashes the path string rather than the file bytes:
// the fingerprint only gates re-classification of already-ingested photos, so
// the cheap surrogate wins over a full content read. Collisions are accepted
// as a tradeoff; they cannot corrupt stored data.
func FromPath(path string) string {
	h := fnv.New64a()
	_, _ = io.WriteString(h, path)
	return fmt.Sprintf("%016x", h.Sum64())
}

// FromContent hashes the file bytes for callers that need true content
// identity, e.g. detecting the same photo under two paths. Substantially more
// expensive than FromPath; the scanner does not use it by default.
func FromContent(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

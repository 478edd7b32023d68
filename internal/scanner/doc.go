// Package scanner runs batched ingest passes that discover, deduplicate,
// classify, and persist new photos.
package scanner

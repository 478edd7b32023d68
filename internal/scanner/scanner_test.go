package scanner_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"sift/internal/classify"
	"sift/internal/gallery"
	"sift/internal/logging"
	"sift/internal/media"
	"sift/internal/scanner"
	"sift/internal/testsupport"
)

type stubClassifier struct {
	predictions []classify.Prediction
	failPaths   map[string]struct{}
	calls       int
}

func (c *stubClassifier) Classify(_ context.Context, path string) ([]classify.Prediction, error) {
	c.calls++
	if _, fail := c.failPaths[path]; fail {
		return nil, errors.New("model unavailable")
	}
	return c.predictions, nil
}

func (c *stubClassifier) Close() error { return nil }

func writeLibrary(t *testing.T, dir string, count int) []string {
	t.Helper()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("photo-%02d.jpg", i))
		testsupport.WritePhotoFile(t, path, 128, base.Add(time.Duration(i)*time.Minute))
		paths = append(paths, path)
	}
	return paths
}

func TestScanIngestsAndDeduplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	writeLibrary(t, testsupport.LibraryDir(cfg), 3)

	classifier := &stubClassifier{predictions: []classify.Prediction{{Label: "golden retriever", Confidence: 0.9}}}
	source := media.NewDirectorySource(cfg, logging.NewNop())
	sc := scanner.New(cfg, store, source, classifier, logging.NewNop())

	ctx := context.Background()
	ingested, err := sc.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if ingested != 3 {
		t.Fatalf("expected 3 ingested, got %d", ingested)
	}

	again, err := sc.Scan(ctx)
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected rescan to ingest nothing, got %d", again)
	}

	pending, err := store.Pending(ctx, 10)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending photos, got %d", len(pending))
	}
	for _, photo := range pending {
		if len(photo.CategoryIDs) != 1 || photo.CategoryIDs[0] != gallery.CategoryPets {
			t.Fatalf("expected pets category, got %v", photo.CategoryIDs)
		}
	}
}

func TestScanHonorsBatchSize(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBatchSize(2))
	store := testsupport.MustOpenStore(t, cfg)
	writeLibrary(t, testsupport.LibraryDir(cfg), 5)

	classifier := &stubClassifier{predictions: []classify.Prediction{{Label: "lakeside", Confidence: 0.7}}}
	source := media.NewDirectorySource(cfg, logging.NewNop())
	sc := scanner.New(cfg, store, source, classifier, logging.NewNop())

	ctx := context.Background()
	counts := []int{2, 2, 1, 0}
	for pass, want := range counts {
		got, err := sc.Scan(ctx)
		if err != nil {
			t.Fatalf("pass %d failed: %v", pass, err)
		}
		if got != want {
			t.Fatalf("pass %d: expected %d ingested, got %d", pass, want, got)
		}
	}
}

func TestScanSkipsFailedPhotoAndRetriesNextPass(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	paths := writeLibrary(t, testsupport.LibraryDir(cfg), 3)

	classifier := &stubClassifier{
		predictions: []classify.Prediction{{Label: "espresso", Confidence: 0.8}},
		failPaths:   map[string]struct{}{paths[1]: {}},
	}
	source := media.NewDirectorySource(cfg, logging.NewNop())
	sc := scanner.New(cfg, store, source, classifier, logging.NewNop())

	ctx := context.Background()
	ingested, err := sc.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if ingested != 2 {
		t.Fatalf("expected 2 ingested around the failure, got %d", ingested)
	}

	classifier.failPaths = nil
	retried, err := sc.Scan(ctx)
	if err != nil {
		t.Fatalf("retry Scan failed: %v", err)
	}
	if retried != 1 {
		t.Fatalf("expected failed photo ingested on retry, got %d", retried)
	}
}

func TestScanRecordsPriorityCorrectedCategory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	writeLibrary(t, testsupport.LibraryDir(cfg), 1)

	classifier := &stubClassifier{predictions: []classify.Prediction{
		{Label: "golden retriever", Confidence: 0.9},
		{Label: "necktie", Confidence: 0.4},
	}}
	source := media.NewDirectorySource(cfg, logging.NewNop())
	sc := scanner.New(cfg, store, source, classifier, logging.NewNop())

	ctx := context.Background()
	if _, err := sc.Scan(ctx); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	pending, err := store.Pending(ctx, 1)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending photo, got %d", len(pending))
	}
	photo := pending[0]
	if len(photo.CategoryIDs) != 1 || photo.CategoryIDs[0] != gallery.CategoryPeople {
		t.Fatalf("expected people category, got %v", photo.CategoryIDs)
	}
	if photo.UserNotes != "necktie" {
		t.Fatalf("expected necktie label recorded, got %q", photo.UserNotes)
	}
	if photo.AIConfidence != 0.4 {
		t.Fatalf("expected confidence 0.4, got %v", photo.AIConfidence)
	}
}

func TestScanEmptyPredictionsFallsBackToOther(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	writeLibrary(t, testsupport.LibraryDir(cfg), 1)

	classifier := &stubClassifier{}
	source := media.NewDirectorySource(cfg, logging.NewNop())
	sc := scanner.New(cfg, store, source, classifier, logging.NewNop())

	ctx := context.Background()
	if _, err := sc.Scan(ctx); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	pending, err := store.Pending(ctx, 1)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending photo, got %d", len(pending))
	}
	if pending[0].CategoryIDs[0] != gallery.CategoryOther {
		t.Fatalf("expected other category, got %v", pending[0].CategoryIDs)
	}
	if pending[0].UserNotes != classify.UnknownLabel {
		t.Fatalf("expected %q label recorded, got %q", classify.UnknownLabel, pending[0].UserNotes)
	}
	if pending[0].AIConfidence != 0 {
		t.Fatalf("expected zero confidence, got %v", pending[0].AIConfidence)
	}
}

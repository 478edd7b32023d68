package testsupport

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"sift/internal/config"
	"sift/internal/gallery"
)

// MustOpenStore opens a gallery.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *gallery.Store {
	t.Helper()

	store, err := gallery.Open(cfg)
	if err != nil {
		t.Fatalf("gallery.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCategories inserts the default category set into the store.
func SeedCategories(t testing.TB, store *gallery.Store) {
	t.Helper()

	if err := store.SeedDefaultCategories(context.Background()); err != nil {
		t.Fatalf("seed categories: %v", err)
	}
}

// NewPhoto inserts a pending photo with the given hash and category links.
func NewPhoto(t testing.TB, store *gallery.Store, hash string, categoryIDs ...string) *gallery.Photo {
	t.Helper()

	photo := &gallery.Photo{
		ID:          uuid.NewString(),
		URI:         "/library/" + hash + ".jpg",
		Hash:        hash,
		Status:      gallery.StatusPending,
		DateCreated: 1700000000000,
	}
	inserted, err := store.InsertPhoto(context.Background(), photo, categoryIDs)
	if err != nil {
		t.Fatalf("insert photo %s: %v", hash, err)
	}
	if !inserted {
		t.Fatalf("photo with hash %s already present", hash)
	}
	return photo
}

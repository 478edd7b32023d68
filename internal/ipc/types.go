package ipc

import "sift/internal/api"

// PhotoView mirrors the API photo DTO for IPC callers.
type PhotoView = api.PhotoView

// CategoryView mirrors the API category DTO for IPC callers.
type CategoryView = api.CategoryView

// ScanRequest triggers an ingest pass over the library directories.
type ScanRequest struct{}

// ScanResponse reports how many new photos were admitted.
type ScanResponse struct {
	Ingested int `json:"ingested"`
}

// PendingRequest fetches undecided photos. A zero limit uses the configured
// pending limit.
type PendingRequest struct {
	Limit int `json:"limit"`
}

// PendingResponse contains undecided photos, newest capture first.
type PendingResponse struct {
	Photos []PhotoView `json:"photos"`
}

// SwipeRequest applies a triage decision to a photo. URI is optional; the
// stored content locator is authoritative and is what a NOPED decision
// deletes, so a stale client-side URI cannot redirect the removal.
type SwipeRequest struct {
	PhotoID  string `json:"photoId"`
	Decision string `json:"decision"`
	URI      string `json:"uri,omitempty"`
}

// SwipeResponse indicates the decision was recorded.
type SwipeResponse struct {
	Applied bool `json:"applied"`
}

// GalleryRequest fetches photos by status.
type GalleryRequest struct {
	Status string `json:"status"`
}

// GalleryResponse contains photos carrying the requested status.
type GalleryResponse struct {
	Photos []PhotoView `json:"photos"`
}

// CategoriesRequest fetches the seeded category set.
type CategoriesRequest struct{}

// CategoriesResponse contains all categories ordered by name.
type CategoriesResponse struct {
	Categories []CategoryView `json:"categories"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running     bool           `json:"running"`
	PID         int            `json:"pid"`
	DBPath      string         `json:"db_path"`
	LockPath    string         `json:"lock_path"`
	LibraryDirs []string       `json:"library_dirs"`
	PhotoStats  map[string]int `json:"photo_stats"`
}

// DatabaseHealthRequest fetches detailed database diagnostics.
type DatabaseHealthRequest struct{}

// DatabaseHealthResponse reports database health information.
type DatabaseHealthResponse struct {
	DBPath           string   `json:"db_path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	SchemaVersion    string   `json:"schema_version"`
	TablesPresent    []string `json:"tables_present"`
	MissingTables    []string `json:"missing_tables"`
	IntegrityCheck   bool     `json:"integrity_check"`
	TotalPhotos      int      `json:"total_photos"`
	Error            string   `json:"error"`
}

// StopRequest stops the daemon.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

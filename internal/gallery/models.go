package gallery

import (
	"strings"
	"time"
)

// Status represents the review lifecycle of a photo.
type Status string

const (
	// StatusPending marks freshly ingested photos awaiting review.
	StatusPending Status = "PENDING"
	// StatusLiked marks photos the user chose to keep.
	StatusLiked Status = "LIKED"
	// StatusHold marks photos the user deferred.
	StatusHold Status = "HOLD"
	// StatusNoped marks photos selected for deletion. Rows never persist in
	// this state; the triage machine deletes them in the same operation.
	StatusNoped Status = "NOPED"
)

var allStatuses = []Status{StatusPending, StatusLiked, StatusHold, StatusNoped}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsDecision reports whether a status is a valid user review decision.
// PENDING is assigned only at ingestion and never by a swipe.
func IsDecision(status Status) bool {
	switch status {
	case StatusLiked, StatusHold, StatusNoped:
		return true
	default:
		return false
	}
}

// Photo is a library photo persisted in SQLite.
type Photo struct {
	ID           string
	URI          string
	Hash         string
	Status       Status
	UserNotes    string  // raw classifier label justifying the category, "" when unset
	AIConfidence float64 // confidence of UserNotes, in [0,1]
	DateCreated  int64   // capture time, epoch milliseconds, 0 when unknown
	SizeBytes    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PhotoWithCategories pairs a photo with its category links.
type PhotoWithCategories struct {
	Photo
	CategoryIDs []string
}

// Category is a triage bucket photos are filed into.
type Category struct {
	ID          string
	Name        string
	Description string
	IconName    string
}

// Stable category identifiers for the default set.
const (
	CategoryPeople    = "cat_people"
	CategoryPets      = "cat_pets"
	CategoryFood      = "cat_food"
	CategoryNature    = "cat_nature"
	CategoryDocuments = "cat_documents"
	CategoryVehicles  = "cat_vehicles"
	CategoryOther     = "cat_other"
)

// DefaultCategories returns the fixed category set seeded at scan time.
// Seeding uses insert-or-replace, so edits here propagate on the next scan.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryPeople, Name: "People", Description: "People and portraits", IconName: "person"},
		{ID: CategoryPets, Name: "Pets", Description: "Domestic animals", IconName: "pets"},
		{ID: CategoryFood, Name: "Food", Description: "Meals and drinks", IconName: "restaurant"},
		{ID: CategoryNature, Name: "Nature", Description: "Outdoors and landscapes", IconName: "landscape"},
		{ID: CategoryDocuments, Name: "Documents", Description: "Text and paper", IconName: "description"},
		{ID: CategoryVehicles, Name: "Vehicles", Description: "Transport", IconName: "directions_car"},
		{ID: CategoryOther, Name: "Other", Description: "Unclassified", IconName: "image"},
	}
}

// DatabaseHealth captures diagnostic information about the photo database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	TablesPresent    []string
	MissingTables    []string
	IntegrityCheck   bool
	TotalPhotos      int
	Error            string
}

// Package api defines the serialized views exchanged across the process
// boundary between the daemon and its clients.
package api

import (
	"sift/internal/gallery"
)

// PhotoView is the wire representation of a photo.
type PhotoView struct {
	ID           string   `json:"id"`
	URI          string   `json:"uri"`
	Hash         string   `json:"hash"`
	Status       string   `json:"status"`
	UserNotes    string   `json:"userNotes,omitempty"`
	CategoryIDs  []string `json:"categoryIds"`
	AIConfidence float64  `json:"aiConfidence"`
	DateCreated  int64    `json:"dateCreated"`
	SizeBytes    int64    `json:"sizeBytes"`
}

// CategoryView is the wire representation of a category.
type CategoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconName    string `json:"iconName"`
}

// NewPhotoView converts a stored photo into its wire form. A photo with no
// explicit category links is surfaced under the catch-all category rather
// than with an empty list.
func NewPhotoView(photo *gallery.PhotoWithCategories) PhotoView {
	categoryIDs := photo.CategoryIDs
	if len(categoryIDs) == 0 {
		categoryIDs = []string{gallery.CategoryOther}
	}
	return PhotoView{
		ID:           photo.ID,
		URI:          photo.URI,
		Hash:         photo.Hash,
		Status:       string(photo.Status),
		UserNotes:    photo.UserNotes,
		CategoryIDs:  categoryIDs,
		AIConfidence: photo.AIConfidence,
		DateCreated:  photo.DateCreated,
		SizeBytes:    photo.SizeBytes,
	}
}

// NewPhotoViews converts a photo slice, preserving order.
func NewPhotoViews(photos []*gallery.PhotoWithCategories) []PhotoView {
	views := make([]PhotoView, 0, len(photos))
	for _, photo := range photos {
		views = append(views, NewPhotoView(photo))
	}
	return views
}

// NewCategoryView converts a stored category into its wire form.
func NewCategoryView(category gallery.Category) CategoryView {
	return CategoryView{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IconName:    category.IconName,
	}
}

// NewCategoryViews converts a category slice, preserving order.
func NewCategoryViews(categories []gallery.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, NewCategoryView(category))
	}
	return views
}

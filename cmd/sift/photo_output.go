package main

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sift/internal/ipc"
)

var titleCaser = cases.Title(language.English)

// displayCategory turns a category id like "cat_people" into "People".
func displayCategory(id string) string {
	name := strings.TrimPrefix(id, "cat_")
	name = strings.ReplaceAll(name, "_", " ")
	return titleCaser.String(name)
}

func displayCategories(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, displayCategory(id))
	}
	return strings.Join(names, ", ")
}

func displayCaptureTime(epochMillis int64) string {
	if epochMillis <= 0 {
		return "-"
	}
	return time.UnixMilli(epochMillis).Local().Format("2006-01-02 15:04")
}

func displaySize(sizeBytes int64) string {
	const unit = 1024
	if sizeBytes < unit {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	div, exp := int64(unit), 0
	for n := sizeBytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(sizeBytes)/float64(div), "KMG"[exp])
}

func displayConfidence(confidence float64) string {
	if confidence <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", confidence*100)
}

func renderPhotoTable(photos []ipc.PhotoView) string {
	columns := []tableColumn{
		{title: "ID"},
		{title: "STATUS"},
		{title: "CATEGORIES"},
		{title: "LABEL", maxWidth: 24},
		{title: "CONFIDENCE", right: true},
		{title: "CAPTURED"},
		{title: "SIZE", right: true},
		{title: "URI", maxWidth: 56},
	}
	rows := make([][]string, 0, len(photos))
	for _, photo := range photos {
		label := photo.UserNotes
		if label == "" {
			label = "-"
		}
		rows = append(rows, []string{
			photo.ID,
			photo.Status,
			displayCategories(photo.CategoryIDs),
			label,
			displayConfidence(photo.AIConfidence),
			displayCaptureTime(photo.DateCreated),
			displaySize(photo.SizeBytes),
			photo.URI,
		})
	}
	return renderTable(columns, rows)
}

func renderCategoryTable(categories []ipc.CategoryView) string {
	columns := []tableColumn{
		{title: "ID"},
		{title: "NAME"},
		{title: "DESCRIPTION", maxWidth: 48},
		{title: "ICON"},
	}
	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, []string{
			category.ID,
			category.Name,
			category.Description,
			category.IconName,
		})
	}
	return renderTable(columns, rows)
}

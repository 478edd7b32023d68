package gallery

import (
	"context"
	"errors"
	"fmt"
)

// UpsertCategory inserts a category row or refreshes its display fields in
// place. Used for the idempotent reseed of the default set at scan time.
// INSERT OR REPLACE would delete and reinsert the row, and the delete half
// cascades through photo_category, so conflicts must update in place.
func (s *Store) UpsertCategory(ctx context.Context, category Category) error {
	if category.ID == "" {
		return errors.New("category id is required")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO categories (id, name, description, icon_name) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			icon_name = excluded.icon_name`,
		category.ID,
		category.Name,
		category.Description,
		category.IconName,
	)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// SeedDefaultCategories ensures the fixed default category set exists.
func (s *Store) SeedDefaultCategories(ctx context.Context) error {
	for _, category := range DefaultCategories() {
		if err := s.UpsertCategory(ctx, category); err != nil {
			return err
		}
	}
	return nil
}

// Categories returns all categories ordered by display name.
func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, icon_name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.IconName); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// InsertLink adds a photo-category link, ignoring duplicates.
func (s *Store) InsertLink(ctx context.Context, photoID, categoryID string) error {
	if photoID == "" || categoryID == "" {
		return errors.New("photo id and category id are required")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO photo_category (photo_id, category_id) VALUES (?, ?)`,
		photoID,
		categoryID,
	)
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// LinkCount returns the number of category links held by a photo.
func (s *Store) LinkCount(ctx context.Context, photoID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM photo_category WHERE photo_id = ?`, photoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return count, nil
}

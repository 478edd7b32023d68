package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const photoColumns = "id, uri, hash, status, user_notes, ai_confidence, date_created, size_bytes, created_at, updated_at"

// InsertPhoto persists a new photo and its category links in one transaction.
// The photo row uses insert-or-ignore on the unique hash, so racing a
// duplicate fingerprint is silently absorbed; the returned bool reports
// whether a row was actually created. Links are insert-or-ignore as well,
// upholding the composite-unique invariant.
func (s *Store) InsertPhoto(ctx context.Context, photo *Photo, categoryIDs []string) (bool, error) {
	if photo == nil {
		return false, errors.New("photo is nil")
	}
	if photo.ID == "" {
		return false, errors.New("photo id is required")
	}
	if photo.Hash == "" {
		return false, errors.New("photo hash is required")
	}
	if photo.Status == "" {
		photo.Status = StatusPending
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO photos (
            id, uri, hash, status, user_notes, ai_confidence,
            date_created, size_bytes, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		photo.ID,
		photo.URI,
		photo.Hash,
		photo.Status,
		nullableString(photo.UserNotes),
		photo.AIConfidence,
		nullableInt64(photo.DateCreated),
		nullableInt64(photo.SizeBytes),
		timestamp,
		timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// Duplicate hash; nothing to link.
		return false, tx.Commit()
	}

	for _, categoryID := range categoryIDs {
		if categoryID == "" {
			continue
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO photo_category (photo_id, category_id) VALUES (?, ?)`,
			photo.ID,
			categoryID,
		); err != nil {
			return false, fmt.Errorf("insert photo category link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit insert: %w", err)
	}
	photo.CreatedAt = now
	photo.UpdatedAt = now
	return true, nil
}

// GetByID fetches a photo with its category links, or nil when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*PhotoWithCategories, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	photo, err := scanPhoto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	result := []*PhotoWithCategories{{Photo: *photo}}
	if err := s.attachCategories(ctx, result); err != nil {
		return nil, err
	}
	return result[0], nil
}

// Pending returns photos awaiting review, newest capture first, bounded by limit.
func (s *Store) Pending(ctx context.Context, limit int) ([]*PhotoWithCategories, error) {
	if limit <= 0 {
		return nil, nil
	}
	return s.queryPhotos(
		ctx,
		`SELECT `+photoColumns+` FROM photos WHERE status = ? ORDER BY date_created DESC, id LIMIT ?`,
		StatusPending,
		limit,
	)
}

// ByStatus returns photos in the given review state, newest capture first.
func (s *Store) ByStatus(ctx context.Context, status Status) ([]*PhotoWithCategories, error) {
	return s.queryPhotos(
		ctx,
		`SELECT `+photoColumns+` FROM photos WHERE status = ? ORDER BY date_created DESC, id`,
		status,
	)
}

// Fingerprints returns the full set of known content fingerprints. The
// scanner loads this once per pass as its dedup oracle.
func (s *Store) Fingerprints(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT hash FROM photos`)
	if err != nil {
		return nil, fmt.Errorf("query fingerprints: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, err
		}
		seen[hash] = struct{}{}
	}
	return seen, rows.Err()
}

// UpdateStatus overwrites a photo's review status. Re-applying the same
// status is a harmless overwrite. The returned bool reports whether the row
// existed.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) (bool, error) {
	if _, ok := statusSet[status]; !ok {
		return false, fmt.Errorf("unknown status %q", status)
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE photos SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a photo and its category links in one transaction. The link
// delete is explicit rather than relying on the schema's ON DELETE CASCADE
// alone, so the invariant holds even against a database opened without
// foreign_keys enabled. Returns false when the row was already gone.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM photo_category WHERE photo_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete photo links: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) queryPhotos(ctx context.Context, query string, args ...any) ([]*PhotoWithCategories, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	var photos []*PhotoWithCategories
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, &PhotoWithCategories{Photo: *photo})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func (s *Store) attachCategories(ctx context.Context, photos []*PhotoWithCategories) error {
	if len(photos) == 0 {
		return nil
	}
	byID := make(map[string]*PhotoWithCategories, len(photos))
	args := make([]any, 0, len(photos))
	for _, photo := range photos {
		byID[photo.ID] = photo
		args = append(args, photo.ID)
	}

	query := `SELECT photo_id, category_id FROM photo_category WHERE photo_id IN (` +
		makePlaceholders(len(args)) + `) ORDER BY category_id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query photo categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var photoID, categoryID string
		if err := rows.Scan(&photoID, &categoryID); err != nil {
			return err
		}
		if photo, ok := byID[photoID]; ok {
			photo.CategoryIDs = append(photo.CategoryIDs, categoryID)
		}
	}
	return rows.Err()
}

func scanPhoto(scanner interface{ Scan(dest ...any) error }) (*Photo, error) {
	var (
		id          string
		uri         string
		hash        string
		statusStr   string
		userNotes   sql.NullString
		confidence  sql.NullFloat64
		dateCreated sql.NullInt64
		sizeBytes   sql.NullInt64
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&uri,
		&hash,
		&statusStr,
		&userNotes,
		&confidence,
		&dateCreated,
		&sizeBytes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	photo := &Photo{
		ID:           id,
		URI:          uri,
		Hash:         hash,
		Status:       Status(statusStr),
		UserNotes:    userNotes.String,
		AIConfidence: confidence.Float64,
		DateCreated:  dateCreated.Int64,
		SizeBytes:    sizeBytes.Int64,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		photo.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		photo.UpdatedAt = updated
	}
	return photo, nil
}

// Package gallery persists photos, categories, and their links in SQLite and
// owns the review-status lifecycle semantics.
//
// The Store manages the database connection, schema initialization, and every
// mutation the pipeline needs: insert-or-ignore photo ingestion keyed on the
// unique content fingerprint, idempotent category seeding, composite-unique
// link rows, status overwrites, and transactional cascade deletes. Photo rows
// leave the table only through Delete, which removes the row and its links in
// a single transaction.
//
// Treat this package as the single source of truth for triage-state
// semantics; when you add statuses or columns, update schema.sql and bump
// schemaVersion.
package gallery

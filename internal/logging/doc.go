// Package logging wraps log/slog with the construction and attribute
// conventions used throughout sift.
//
// New builds a logger from Options (console or json format, multi-path
// output); NewFromConfig derives those options from application config.
// Attr helpers keep call sites terse, and ContextFields/WithContext thread
// photo and correlation identifiers from context into log records.
package logging

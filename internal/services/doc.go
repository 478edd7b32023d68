// Package services provides shared error classification and context helpers
// used across the scan and triage pipeline.
//
// Errors are tagged with sentinel markers (ErrValidation, ErrPermission, and
// friends) via Wrap so boundary code can map a failure onto a transport error
// code without string matching. Context helpers carry correlation identifiers
// through IPC request handling.
package services

// Package daemon coordinates the long-running photo pipeline: store
// ownership, instance locking, scan scheduling, and triage dispatch.
package daemon

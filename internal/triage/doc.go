// Package triage applies keep, defer, and discard decisions to photos.
package triage

// Package media discovers candidate photos in library directories and
// derives their capture timestamps.
package media

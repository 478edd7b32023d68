package media

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"sift/internal/config"
	"sift/internal/logging"
)

// Item is a candidate photo discovered in a library directory.
type Item struct {
	Path        string
	CaptureTime time.Time
	SizeBytes   int64
}

// Source enumerates candidate photos, newest capture first.
type Source interface {
	Items(ctx context.Context) ([]Item, error)
}

// DirectorySource walks configured library roots on the local filesystem.
// Hidden entries and trash directories are excluded, matching the platform
// convention of not surfacing trashed media.
type DirectorySource struct {
	roots      []string
	extensions map[string]struct{}
	logger     *slog.Logger
}

// NewDirectorySource builds a source from the configured library directories.
func NewDirectorySource(cfg *config.Config, logger *slog.Logger) *DirectorySource {
	extensions := make(map[string]struct{}, len(cfg.Scan.Extensions))
	for _, ext := range cfg.Scan.Extensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}
	return &DirectorySource{
		roots:      append([]string{}, cfg.Paths.LibraryDirs...),
		extensions: extensions,
		logger:     logging.NewComponentLogger(logger, "media"),
	}
}

// Items walks every root and returns matching photos sorted newest first.
// Missing roots and unreadable subtrees are logged and skipped rather than
// failing the pass.
func (s *DirectorySource) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	for _, root := range s.roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := s.walkRoot(ctx, root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("library directory missing, skipping",
					logging.String("dir", root),
					logging.String(logging.FieldEventType, "library_dir_missing"),
					logging.String(logging.FieldErrorHint, "check paths.library_dirs in the config"),
				)
				continue
			}
			return nil, err
		}
		items = append(items, found...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CaptureTime.After(items[j].CaptureTime)
	})
	return items, nil
}

func (s *DirectorySource) walkRoot(ctx context.Context, root string) ([]Item, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	var items []Item
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree should not sink the whole pass.
			s.logger.Warn("library entry unreadable, skipping",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "library_entry_unreadable"),
			)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		name := entry.Name()
		if entry.IsDir() {
			if path != root && skipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := s.extensions[ext]; !ok {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			// Entry vanished mid-walk; the next pass will see it if it returns.
			return nil
		}

		items = append(items, Item{
			Path:        path,
			CaptureTime: captureTime(path, info.ModTime()),
			SizeBytes:   info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch strings.ToLower(name) {
	case "trash", "recycle.bin", "lost+found":
		return true
	}
	return false
}

var registerParsers sync.Once

// captureTime reads the EXIF original-capture timestamp, falling back to the
// file modification time when the image carries no parseable EXIF block.
func captureTime(path string, fallback time.Time) time.Time {
	registerParsers.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})

	f, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	data, err := exif.Decode(f)
	if err != nil {
		return fallback
	}
	taken, err := data.DateTime()
	if err != nil {
		return fallback
	}
	return taken
}

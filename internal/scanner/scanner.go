package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"sift/internal/classify"
	"sift/internal/config"
	"sift/internal/fingerprint"
	"sift/internal/gallery"
	"sift/internal/logging"
	"sift/internal/media"
	"sift/internal/services"
)

// BatchScanner ingests newly discovered photos into the gallery store.
// Each pass admits at most the configured batch size of new photos;
// already-known fingerprints pass through without consuming the budget.
type BatchScanner struct {
	cfg        *config.Config
	store      *gallery.Store
	source     media.Source
	classifier classify.Classifier
	logger     *slog.Logger
}

// New builds a scanner over the provided collaborators.
func New(cfg *config.Config, store *gallery.Store, source media.Source, classifier classify.Classifier, logger *slog.Logger) *BatchScanner {
	return &BatchScanner{
		cfg:        cfg,
		store:      store,
		source:     source,
		classifier: classifier,
		logger:     logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan runs one ingest pass and returns the number of photos admitted.
// Per-photo failures are logged and skipped so one bad file cannot stall
// the rest of the batch; the failed photo stays eligible for the next pass.
func (s *BatchScanner) Scan(ctx context.Context) (int, error) {
	if err := s.store.SeedDefaultCategories(ctx); err != nil {
		return 0, services.Wrap(services.ErrTransient, "scanner", "scan", "seed categories", err)
	}

	known, err := s.store.Fingerprints(ctx)
	if err != nil {
		return 0, services.Wrap(services.ErrTransient, "scanner", "scan", "load fingerprints", err)
	}

	items, err := s.source.Items(ctx)
	if err != nil {
		return 0, services.Wrap(services.ErrTransient, "scanner", "scan", "enumerate library", err)
	}
	s.logger.Info("scan pass started",
		logging.Int("candidates", len(items)),
		logging.Int("known", len(known)),
		logging.Int("batch_size", s.cfg.Scan.BatchSize),
	)

	ingested := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return ingested, err
		}
		if ingested >= s.cfg.Scan.BatchSize {
			break
		}

		hash := fingerprint.FromPath(item.Path)
		if _, seen := known[hash]; seen {
			continue
		}

		if _, err := os.Stat(item.Path); err != nil {
			// Vanished between enumeration and ingest; retried next pass.
			s.logger.Warn("photo unreachable, skipping",
				logging.String("path", item.Path),
				logging.Error(err),
			)
			continue
		}

		inserted, err := s.ingest(ctx, item, hash)
		if err != nil {
			s.logger.Warn("photo ingest failed, skipping",
				logging.String("path", item.Path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "ingest_failed"),
			)
			continue
		}
		known[hash] = struct{}{}
		if inserted {
			ingested++
		}
	}

	s.logger.Info("scan pass complete", logging.Int("ingested", ingested))
	return ingested, nil
}

func (s *BatchScanner) ingest(ctx context.Context, item media.Item, hash string) (bool, error) {
	predictions, err := s.classifier.Classify(ctx, item.Path)
	if err != nil {
		return false, fmt.Errorf("classify: %w", err)
	}
	resolution := classify.Resolve(predictions)

	photo := &gallery.Photo{
		ID:           uuid.NewString(),
		URI:          item.Path,
		Hash:         hash,
		Status:       gallery.StatusPending,
		UserNotes:    resolution.Label,
		AIConfidence: resolution.Confidence,
		DateCreated:  item.CaptureTime.UnixMilli(),
		SizeBytes:    item.SizeBytes,
	}

	inserted, err := s.store.InsertPhoto(services.WithPhotoID(ctx, photo.ID), photo, []string{resolution.CategoryID})
	if err != nil {
		return false, fmt.Errorf("insert photo: %w", err)
	}
	if inserted {
		s.logger.Info("photo ingested",
			logging.String(logging.FieldPhotoID, photo.ID),
			logging.String("path", item.Path),
			logging.String("category", resolution.CategoryID),
			logging.Float64("confidence", resolution.Confidence),
		)
	}
	return inserted, nil
}

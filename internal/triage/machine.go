package triage

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"sift/internal/gallery"
	"sift/internal/logging"
	"sift/internal/services"
)

// ContentRemover deletes the underlying photo content for a discarded photo.
// The default implementation removes the file at the photo's URI.
type ContentRemover interface {
	Remove(path string) error
}

type osRemover struct{}

func (osRemover) Remove(path string) error { return os.Remove(path) }

// Machine applies triage decisions to photos.
//
// LIKED and HOLD overwrite the status in place and are safe to re-apply.
// NOPED removes the content and the photo row; the row delete cascades to
// the category links. Re-applying NOPED to an already-removed id is a no-op.
type Machine struct {
	store   *gallery.Store
	remover ContentRemover
	logger  *slog.Logger
}

// New builds a triage machine over the store with the default file remover.
func New(store *gallery.Store, logger *slog.Logger) *Machine {
	return NewWithRemover(store, osRemover{}, logger)
}

// NewWithRemover builds a triage machine with a custom content remover.
func NewWithRemover(store *gallery.Store, remover ContentRemover, logger *slog.Logger) *Machine {
	return &Machine{
		store:   store,
		remover: remover,
		logger:  logging.NewComponentLogger(logger, "triage"),
	}
}

// Apply records the decision for the photo. Unknown decision values fail
// with a validation error before any mutation.
func (m *Machine) Apply(ctx context.Context, photoID string, decision gallery.Status) error {
	if photoID == "" {
		return services.Wrap(services.ErrValidation, "triage", "apply", "photo id required", nil)
	}
	if !gallery.IsDecision(decision) {
		return services.Wrap(services.ErrValidation, "triage", "apply", "unknown decision "+string(decision), nil)
	}

	ctx = services.WithPhotoID(ctx, photoID)
	if decision == gallery.StatusNoped {
		return m.discard(ctx, photoID)
	}

	updated, err := m.store.UpdateStatus(ctx, photoID, decision)
	if err != nil {
		return services.Wrap(services.ErrTransient, "triage", "apply", "update status", err)
	}
	if !updated {
		// Photo was discarded by an earlier decision; nothing left to mark.
		m.logger.Debug("decision for absent photo ignored",
			logging.String(logging.FieldPhotoID, photoID),
			logging.String("decision", string(decision)),
		)
		return nil
	}
	m.logger.Info("photo decision recorded",
		logging.String(logging.FieldPhotoID, photoID),
		logging.String("decision", string(decision)),
	)
	return nil
}

func (m *Machine) discard(ctx context.Context, photoID string) error {
	photo, err := m.store.GetByID(ctx, photoID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "triage", "discard", "load photo", err)
	}
	if photo == nil {
		return nil
	}

	if err := m.remover.Remove(photo.URI); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return services.Wrap(services.ErrPermission, "triage", "discard", "delete content at "+photo.URI, err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrTransient, "triage", "discard", "delete content at "+photo.URI, err)
		}
	}

	if _, err := m.store.Delete(ctx, photoID); err != nil {
		return services.Wrap(services.ErrTransient, "triage", "discard", "delete photo row", err)
	}
	m.logger.Info("photo discarded",
		logging.String(logging.FieldPhotoID, photoID),
		logging.String("uri", photo.URI),
	)
	return nil
}

package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"sift/internal/classify"
	"sift/internal/config"
	"sift/internal/gallery"
	"sift/internal/logging"
	"sift/internal/media"
	"sift/internal/scanner"
	"sift/internal/triage"
)

// Daemon owns the long-running pipeline: the gallery store, the classifier,
// the batch scanner, and the triage machine. One instance runs per data
// directory, enforced with a file lock.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *gallery.Store
	classifier classify.Classifier
	scanner    *scanner.BatchScanner
	triage     *triage.Machine
	logPath    string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// scanMu serializes scan passes; overlapping passes would double-ingest
	// items admitted after the first pass loaded its fingerprint snapshot.
	scanMu sync.Mutex
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DBPath       string
	LockFilePath string
	LibraryDirs  []string
	PhotoStats   map[gallery.Status]int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *gallery.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	classifier := classify.NewExecClassifier(cfg, logger)
	source := media.NewDirectorySource(cfg, logger)
	return &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		store:      store,
		classifier: classifier,
		scanner:    scanner.New(cfg, store, source, classifier, logger),
		triage:     triage.New(store, logger),
		logPath:    cfg.LogFilePath(),
		lockPath:   cfg.LockPath(),
		lock:       flock.New(cfg.LockPath()),
	}, nil
}

// Start acquires the instance lock and, when a scan interval is configured,
// launches the periodic scan loop.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another sift daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.running.Store(true)

	if d.cfg.Scan.Interval > 0 {
		d.wg.Add(1)
		go d.scanLoop(d.ctx, time.Duration(d.cfg.Scan.Interval)*time.Second)
	}

	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.Int("scan_interval_seconds", d.cfg.Scan.Interval),
	)
	return nil
}

// Stop halts background scanning and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	if err := d.classifier.Close(); err != nil {
		d.logger.Warn("failed to close classifier", logging.Error(err))
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

func (d *Daemon) scanLoop(ctx context.Context, interval time.Duration) {
	defer d.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := d.Scan(ctx); err != nil && !errors.Is(err, context.Canceled) {
				d.logger.Warn("periodic scan failed", logging.Error(err))
			}
		}
	}
}

// Scan runs one ingest pass and returns the number of photos admitted.
func (d *Daemon) Scan(ctx context.Context) (int, error) {
	d.scanMu.Lock()
	defer d.scanMu.Unlock()
	return d.scanner.Scan(ctx)
}

// Pending returns undecided photos, newest capture first, bounded by limit.
// A non-positive limit falls back to the configured pending limit.
func (d *Daemon) Pending(ctx context.Context, limit int) ([]*gallery.PhotoWithCategories, error) {
	if limit <= 0 {
		limit = d.cfg.Triage.PendingLimit
	}
	return d.store.Pending(ctx, limit)
}

// Gallery returns photos carrying the given status.
func (d *Daemon) Gallery(ctx context.Context, status gallery.Status) ([]*gallery.PhotoWithCategories, error) {
	return d.store.ByStatus(ctx, status)
}

// Swipe applies a triage decision to the photo.
func (d *Daemon) Swipe(ctx context.Context, photoID string, decision gallery.Status) error {
	return d.triage.Apply(ctx, photoID, decision)
}

// Categories returns the seeded category set.
func (d *Daemon) Categories(ctx context.Context) ([]gallery.Category, error) {
	if err := d.store.SeedDefaultCategories(ctx); err != nil {
		return nil, err
	}
	return d.store.Categories(ctx)
}

// DatabaseHealth reports detailed store diagnostics.
func (d *Daemon) DatabaseHealth(ctx context.Context) (gallery.DatabaseHealth, error) {
	return d.store.CheckHealth(ctx)
}

// LogPath returns the daemon log file location.
func (d *Daemon) LogPath() string { return d.logPath }

// Status reports current runtime information.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DBPath:       d.store.Path(),
		LockFilePath: d.lockPath,
		LibraryDirs:  d.cfg.Paths.LibraryDirs,
	}
	stats, err := d.store.Stats(ctx)
	if err != nil {
		d.logger.Warn("failed to collect photo stats", logging.Error(err))
	} else {
		status.PhotoStats = stats
	}
	return status
}

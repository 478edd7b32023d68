package testsupport

import (
	"path/filepath"
	"testing"

	"sift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDirs = []string{filepath.Join(base, "library")}
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithLibraryDirs replaces the library roots on the test config.
func WithLibraryDirs(dirs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LibraryDirs = dirs
	}
}

// WithBatchSize overrides the scan batch size on the test config.
func WithBatchSize(size int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.BatchSize = size
	}
}

// WithClassifierCommand points the config at a specific classifier binary.
func WithClassifierCommand(command string, args ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classifier.Command = command
		b.cfg.Classifier.Args = args
	}
}

// LibraryDir returns the first library root of the generated config.
func LibraryDir(cfg *config.Config) string {
	return cfg.Paths.LibraryDirs[0]
}

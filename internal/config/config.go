package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDirs []string `toml:"library_dirs"`
	DataDir     string   `toml:"data_dir"`
	LogDir      string   `toml:"log_dir"`
}

// Scan contains configuration for the batch scanner.
type Scan struct {
	// BatchSize caps newly ingested photos per scan pass. Duplicates skipped
	// during the pass do not count against it.
	BatchSize int `toml:"batch_size"`
	// Interval is the seconds between automatic scan passes. Zero disables
	// the periodic loop; scans then run only on request.
	Interval int `toml:"interval"`
	// Extensions lists the file extensions treated as photos.
	Extensions []string `toml:"extensions"`
}

// Classifier contains configuration for the external classifier command.
type Classifier struct {
	// Command is the executable invoked per image. It receives the image path
	// as its final argument and must print a JSON array of
	// {"label": string, "confidence": float} objects to stdout.
	Command string `toml:"command"`
	// Args are passed to the command before the image path.
	Args []string `toml:"args"`
	// MinConfidence drops predictions below this threshold.
	MinConfidence float64 `toml:"min_confidence"`
	// TopK truncates the ranked prediction list.
	TopK int `toml:"top_k"`
	// Timeout is the per-image classification timeout in seconds.
	Timeout int `toml:"timeout"`
}

// Triage contains configuration for the review surface.
type Triage struct {
	// PendingLimit bounds how many pending photos a single query returns.
	PendingLimit int `toml:"pending_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sift.
//
// Configuration sections by subsystem:
//   - Paths: photo library roots and state directories
//   - Scan: batch scanner budget, interval, and extension filter
//   - Classifier: external classifier command and thresholds
//   - Triage: review query bounds
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Scan       Scan       `toml:"scan"`
	Classifier Classifier `toml:"classifier"`
	Triage     Triage     `toml:"triage"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sift/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return value
// is the resolved path, the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sift.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to the given path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the state directories the daemon writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite database location under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "sift.db")
}

// SocketPath returns the IPC socket location under the data directory.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Paths.DataDir, "sift.sock")
}

// LockPath returns the daemon lock file location under the data directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "siftd.lock")
}

// LogFilePath returns the daemon log file location under the log directory.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "sift.log")
}

// ExpandPath resolves ~ and environment variables in a path value.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	expanded := os.ExpandEnv(trimmed)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if expanded == "~" {
			expanded = home
		} else {
			expanded = filepath.Join(home, expanded[2:])
		}
	}
	return filepath.Clean(expanded), nil
}

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeClassifier()
	c.normalizeTriage()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	dirs := make([]string, 0, len(c.Paths.LibraryDirs))
	for i, dir := range c.Paths.LibraryDirs {
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("paths.library_dirs[%d]: %w", i, err)
		}
		if expanded == "" {
			continue
		}
		dirs = append(dirs, expanded)
	}
	c.Paths.LibraryDirs = dirs
	return nil
}

func (c *Config) normalizeScan() {
	if c.Scan.BatchSize <= 0 {
		c.Scan.BatchSize = defaultScanBatchSize
	}
	if c.Scan.Interval < 0 {
		c.Scan.Interval = 0
	}
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = defaultExtensions()
	}
	exts := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Scan.Extensions = exts
}

func (c *Config) normalizeClassifier() {
	c.Classifier.Command = strings.TrimSpace(c.Classifier.Command)
	if c.Classifier.Command == "" {
		c.Classifier.Command = defaultClassifierCmd
	}
	if c.Classifier.TopK <= 0 {
		c.Classifier.TopK = defaultTopK
	}
	if c.Classifier.Timeout <= 0 {
		c.Classifier.Timeout = defaultClassifyTimeout
	}
}

func (c *Config) normalizeTriage() {
	if c.Triage.PendingLimit <= 0 {
		c.Triage.PendingLimit = defaultPendingLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

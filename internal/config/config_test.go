package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sift/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "sift")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if len(cfg.Paths.LibraryDirs) != 1 || cfg.Paths.LibraryDirs[0] != filepath.Join(tempHome, "Pictures") {
		t.Fatalf("unexpected library dirs: %v", cfg.Paths.LibraryDirs)
	}
	if cfg.Scan.BatchSize != 50 {
		t.Fatalf("unexpected batch size: %d", cfg.Scan.BatchSize)
	}
	if cfg.Scan.Interval != 0 {
		t.Fatalf("expected periodic scanning disabled by default, got %d", cfg.Scan.Interval)
	}
	if cfg.Classifier.Command != "sift-classify" {
		t.Fatalf("unexpected classifier command: %q", cfg.Classifier.Command)
	}
	if cfg.Classifier.TopK != config.Default().Classifier.TopK {
		t.Fatalf("unexpected top_k: %d", cfg.Classifier.TopK)
	}
	if cfg.Triage.PendingLimit != config.Default().Triage.PendingLimit {
		t.Fatalf("unexpected pending limit: %d", cfg.Triage.PendingLimit)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging format: %q", cfg.Logging.Format)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "sift.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.SocketPath() != filepath.Join(wantData, "sift.sock") {
		t.Fatalf("unexpected socket path: %q", cfg.SocketPath())
	}
	if cfg.LogFilePath() != filepath.Join(wantData, "logs", "sift.log") {
		t.Fatalf("unexpected log file path: %q", cfg.LogFilePath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "sift.toml")

	type payload struct {
		Paths struct {
			LibraryDirs []string `toml:"library_dirs"`
			DataDir     string   `toml:"data_dir"`
			LogDir      string   `toml:"log_dir"`
		} `toml:"paths"`
		Scan struct {
			BatchSize  int      `toml:"batch_size"`
			Extensions []string `toml:"extensions"`
		} `toml:"scan"`
		Classifier struct {
			Command       string  `toml:"command"`
			MinConfidence float64 `toml:"min_confidence"`
		} `toml:"classifier"`
	}
	custom := payload{}
	custom.Paths.LibraryDirs = []string{filepath.Join(tempDir, "photos")}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Paths.LogDir = filepath.Join(tempDir, "logs")
	custom.Scan.BatchSize = 10
	custom.Scan.Extensions = []string{"JPG", " png "}
	custom.Classifier.Command = "/usr/local/bin/classify"
	custom.Classifier.MinConfidence = 0.5
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Scan.BatchSize != 10 {
		t.Fatalf("expected batch size 10, got %d", cfg.Scan.BatchSize)
	}
	if len(cfg.Scan.Extensions) != 2 || cfg.Scan.Extensions[0] != ".jpg" || cfg.Scan.Extensions[1] != ".png" {
		t.Fatalf("expected normalized extensions, got %v", cfg.Scan.Extensions)
	}
	if cfg.Classifier.Command != "/usr/local/bin/classify" {
		t.Fatalf("expected classifier command override, got %q", cfg.Classifier.Command)
	}
	if cfg.Classifier.MinConfidence != 0.5 {
		t.Fatalf("expected min confidence 0.5, got %v", cfg.Classifier.MinConfidence)
	}
	if cfg.Classifier.TopK != config.Default().Classifier.TopK {
		t.Fatalf("expected top_k default, got %d", cfg.Classifier.TopK)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "sift.toml")
	content := "[classifier]\nmin_confidence = 1.5\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "min_confidence") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteSampleRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	if err := config.WriteSample(configPath); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := config.WriteSample(configPath); err == nil {
		t.Fatal("expected second WriteSample to fail")
	}

	cfg, _, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Scan.BatchSize != config.Default().Scan.BatchSize {
		t.Fatalf("unexpected batch size from sample: %d", cfg.Scan.BatchSize)
	}
}

func TestExpandPathResolvesHome(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	expanded, err := config.ExpandPath("~/photos")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if expanded != filepath.Join(tempHome, "photos") {
		t.Fatalf("unexpected expansion: %q", expanded)
	}

	expanded, err = config.ExpandPath("  ")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if expanded != "" {
		t.Fatalf("expected empty expansion, got %q", expanded)
	}
}
